package ledgertest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/store/iavl"
)

// CommitKVStore returns a new instance of a ledger.CommitKVStore backed by
// leveldb in a temporary directory. Call cleanup once done.
func CommitKVStore(t testing.TB) (db ledger.CommitKVStore, cleanup func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "ledgertest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	s, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot create a commit store: %s", err)
	}
	return s, func() {
		s.Close()
		os.RemoveAll(dbpath)
	}
}
