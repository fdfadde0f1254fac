/*
Package client talks to an offerd node over the tendermint RPC. It reads
wallets, nonces and offers, and broadcasts signed transactions.
*/
package client

import (
	"sync"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/offer"
	"github.com/iov-one/ledger/x/sigs"
	amino "github.com/tendermint/go-amino"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Status is the raw node status.
type Status = ctypes.ResultStatus

// GenesisDoc is the full tendermint genesis file
type GenesisDoc = tmtypes.GenesisDoc

// models are stored amino encoded
var cdc = amino.NewCodec()

// Client is the node functionality used by the command line tool.
type Client interface {
	GetUser(addr ledger.Address) (*UserResponse, error)
	GetWallet(addr ledger.Address) (*WalletResponse, error)
	GetOffer(id uint64) (*offer.Offer, error)
	BroadcastTx(tx ledger.Marshaller) BroadcastTxResponse
	AbciQuery(path string, data []byte) (AbciResponse, error)
}

// OfferClient is a tendermint client wrapped to provide
// simple access to the data structures used in offerd.
type OfferClient struct {
	conn rpcclient.Client
}

var _ Client = (*OfferClient)(nil)

// NewClient wraps an OfferClient around an existing
// tendermint client connection.
func NewClient(conn rpcclient.Client) *OfferClient {
	return &OfferClient{conn: conn}
}

// TendermintClient returns the underlying connection.
func (c *OfferClient) TendermintClient() rpcclient.Client {
	return c.conn
}

// Nonce has a client/address pair, queries for the nonce
// and caches recent nonce locally to quickly sign
type Nonce struct {
	mutex     sync.Mutex
	client    Client
	addr      ledger.Address
	nonce     int64
	fromQuery bool
}

// NewNonce creates a nonce for a client / address pair.
// Call Query to force a query, Next to use cache if possible
func NewNonce(client Client, addr ledger.Address) *Nonce {
	return &Nonce{client: client, addr: addr}
}

// Query always queries the blockchain for the next nonce
func (n *Nonce) Query() (int64, error) {
	user, err := n.client.GetUser(n.addr)
	if err != nil {
		return 0, err
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if user != nil {
		n.nonce = user.UserData.Sequence
	} else {
		// new account starts at 0
		n.nonce = 0
	}
	n.fromQuery = true
	return n.nonce, nil
}

// Next returns the nonce to sign the next transaction with. The first
// call queries the chain, later calls count up locally, assuming every
// returned nonce was used.
func (n *Nonce) Next() (int64, error) {
	n.mutex.Lock()
	queried := n.fromQuery
	n.mutex.Unlock()
	if !queried {
		nonce, err := n.Query()
		if err != nil {
			return 0, err
		}
		n.mutex.Lock()
		n.nonce = nonce + 1
		n.mutex.Unlock()
		return nonce, nil
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()
	nonce := n.nonce
	n.nonce++
	return nonce, nil
}

// Status will return the raw status from the node
func (c *OfferClient) Status() (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	return status, nil
}

// Genesis will return the genesis directly from the node
func (c *OfferClient) Genesis() (*GenesisDoc, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	return gen.Genesis, nil
}

// ChainID will parse out the chainID from the genesis
func (c *OfferClient) ChainID() (string, error) {
	gen, err := c.Genesis()
	if err != nil {
		return "", err
	}
	return gen.ChainID, nil
}

// Height will parse out the Height from the status result
func (c *OfferClient) Height() (int64, error) {
	status, err := c.Status()
	if err != nil {
		return -1, err
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// AbciResponse contains a query result:
// a (possibly empty) list of key-value pairs, and the height
// at which it queried
type AbciResponse struct {
	// a list of key/value pairs
	Models []ledger.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc,
// verifies if it is an error or empty, and if there is
// data pulls out the ResultSets from keys and values into
// a useful AbciResponse struct
func (c *OfferClient) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	q, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return out, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	resp := q.Response
	if resp.IsErr() {
		return out, errors.ABCIError(resp.Code, resp.Log)
	}
	out.Height = resp.Height
	if len(resp.Key) == 0 {
		return out, nil
	}

	out.Models, err = app.DecodeResults(resp.Key, resp.Value)
	return out, err
}

// BroadcastTxResponse is the result of submitting a transaction.
type BroadcastTxResponse struct {
	Error    error                           // not-nil if there was an error sending
	Response *ctypes.ResultBroadcastTxCommit // not-nil if we got response from node
}

// IsError returns the error for failure if it failed,
// or null if it succeeded
func (b BroadcastTxResponse) IsError() error {
	if b.Error != nil {
		return b.Error
	}
	if b.Response.CheckTx.IsErr() {
		check := b.Response.CheckTx
		return errors.Wrap(errors.ABCIError(check.Code, check.Log), "check tx")
	}
	if b.Response.DeliverTx.IsErr() {
		deliver := b.Response.DeliverTx
		return errors.Wrap(errors.ABCIError(deliver.Code, deliver.Log), "deliver tx")
	}
	return nil
}

// BroadcastTx serializes a signed transaction and writes to the
// blockchain. It returns when the tx is committed to the
// blockchain.
func (c *OfferClient) BroadcastTx(tx ledger.Marshaller) BroadcastTxResponse {
	data, err := tx.Marshal()
	if err != nil {
		return BroadcastTxResponse{Error: err}
	}
	res, err := c.conn.BroadcastTxCommit(data)
	if err != nil {
		return BroadcastTxResponse{Error: errors.Wrap(errors.ErrNetwork, err.Error())}
	}
	return BroadcastTxResponse{Response: res}
}

// WalletResponse is a response on a query for a wallet
type WalletResponse struct {
	Address ledger.Address
	Wallet  cash.Wallet
	Height  int64
}

// GetWallet will return a wallet given an address
// If non wallet is present, it will return (nil, nil)
// Error codes are used when the query failed on the server
func (c *OfferClient) GetWallet(addr ledger.Address) (*WalletResponse, error) {
	resp, err := c.AbciQuery("/wallets", addr)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, nil
	}
	out := WalletResponse{Address: addr, Height: resp.Height}
	if err := decodeModel(resp.Models[0].Value, &out.Wallet); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserResponse is a response on a query for a User
type UserResponse struct {
	Address  ledger.Address
	UserData sigs.UserData
	Height   int64
}

// GetUser will return nonce and public key registered
// for a given address if it was ever used.
// If it returns (nil, nil), then this address never signed
// a transaction before (and can use nonce = 0)
func (c *OfferClient) GetUser(addr ledger.Address) (*UserResponse, error) {
	resp, err := c.AbciQuery("/auth", addr)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, nil
	}
	out := UserResponse{Address: addr, Height: resp.Height}
	if err := decodeModel(resp.Models[0].Value, &out.UserData); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOffer returns the offer stored under the id.
func (c *OfferClient) GetOffer(id uint64) (*offer.Offer, error) {
	resp, err := c.AbciQuery("/offers", orm.EncodeSequence(id))
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "No offer with id %d", id)
	}
	var o offer.Offer
	if err := decodeModel(resp.Models[0].Value, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// LastOfferID returns the id of the latest offer, zero if none was
// created.
func (c *OfferClient) LastOfferID() (uint64, error) {
	resp, err := c.AbciQuery("/offers/last", nil)
	if err != nil {
		return 0, err
	}
	if len(resp.Models) != 1 {
		return 0, errors.Wrapf(errors.ErrInvalidState, "expected one counter, got %d", len(resp.Models))
	}
	return orm.DecodeSequence(resp.Models[0].Value)
}

// OffersByCreator returns all offers made by the address.
func (c *OfferClient) OffersByCreator(addr ledger.Address) ([]*offer.Offer, error) {
	return c.offersByIndex("/offers/creator", addr)
}

// OffersByRecipient returns all offers made to the address.
func (c *OfferClient) OffersByRecipient(addr ledger.Address) ([]*offer.Offer, error) {
	return c.offersByIndex("/offers/recipient", addr)
}

func (c *OfferClient) offersByIndex(path string, addr ledger.Address) ([]*offer.Offer, error) {
	resp, err := c.AbciQuery(path, addr)
	if err != nil {
		return nil, err
	}
	offers := make([]*offer.Offer, len(resp.Models))
	for i, m := range resp.Models {
		var o offer.Offer
		if err := decodeModel(m.Value, &o); err != nil {
			return nil, err
		}
		offers[i] = &o
	}
	return offers, nil
}

func decodeModel(raw []byte, dest interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot decode %T: %s", dest, err)
	}
	return nil
}
