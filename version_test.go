package ledger_test

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	ledger.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", ledger.Version())

	ledger.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", ledger.Version())
	ledger.GitCommit = ""
}
