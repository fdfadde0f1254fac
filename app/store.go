package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state related half of abci.Application: the
// handshake, genesis, queries and commits. BaseApp embeds it and adds
// transaction processing.
//
// ABCI calls that carry no user input panic on failure, tendermint has no
// way to receive such an error.
type StoreApp struct {
	logger log.Logger
	// name is reported by Info.
	name        string
	store       *CommitStore
	initializer ledger.Initializer
	queryRouter ledger.QueryRouter
	debug       bool

	// chainID is empty until InitChain stores it. It is read back from
	// the store on every restart.
	chainID string

	// baseContext lives as long as the app, blockContext is replaced on
	// every BeginBlock.
	baseContext  ledger.Context
	blockContext ledger.Context
}

// NewStoreApp loads the latest committed state. It panics if the store
// cannot be read.
func NewStoreApp(name string, store ledger.CommitKVStore,
	queryRouter ledger.QueryRouter, baseContext ledger.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(s.DeliverStore())
	if err != nil {
		panic(err)
	}
	s.chainID = chainID
	if s.chainID != "" {
		s.baseContext = ledger.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = ledger.WithHeight(s.baseContext, info.Version)
	return s
}

// GetChainID returns an empty string before InitChain.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer that InitChain runs on the genesis state.
func (s *StoreApp) WithInit(init ledger.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes query errors carry their full text.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// initGenesis stores the chain id and loads the genesis state. Tendermint
// calls InitChain only once, on an empty store.
func (s *StoreApp) initGenesis(data []byte, chainID string, init ledger.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing in genesis, run init first")
	}

	var appState ledger.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if err := s.storeChainID(chainID); err != nil {
		return err
	}
	if init == nil {
		return nil
	}
	return init.FromGenesis(appState, s.DeliverStore())
}

func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = ledger.WithChainID(s.baseContext, s.chainID)
	// transactions checked before the first block need the chain id too
	s.blockContext = ledger.WithChainID(s.blockContext, s.chainID)
	return nil
}

// WithLogger sets the logger of the app and of every context it creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = ledger.WithLogger(s.baseContext, logger)
	if s.blockContext != nil {
		s.blockContext = ledger.WithLogger(s.blockContext, logger)
	}
	s.logger = logger
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() ledger.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() ledger.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() ledger.CacheableKVStore {
	return s.store.CheckStore()
}

// Info reports the last committed height and app hash, so tendermint
// knows which blocks to replay.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads the last committed state. The path selects a bucket or an
// index, "/offers" or "/offers/creator", optionally followed by "?prefix".
// The requested height is ignored.
//
// Key and Value of the response are two ResultSets of equal length, see
// DecodeResults.
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return s.queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", reqQuery.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, reqQuery.Data)
	if err != nil {
		return s.queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return s.queryError(err)
	}
	return res
}

// splitPath separates the query modifier following "?".
func splitPath(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{
		Log:  log,
		Code: code,
	}
}

func (s *StoreApp) Commit() (res abci.ResponseCommit) {
	commitID, err := s.store.Commit()
	if err != nil {
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)
	return abci.ResponseCommit{Data: commitID.Hash}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) (res abci.ResponseInitChain) {
	if err := s.initGenesis(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock starts a new block context carrying the header and height.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) (res abci.ResponseBeginBlock) {
	ctx := ledger.WithHeader(s.baseContext, req.Header)
	ctx = ledger.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = ctx
	return
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) (res abci.ResponseEndBlock) {
	return
}
