package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet holds the keys or the values of a query response. Both sides
// of a response are sent as separate sets of the same length.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

// Marshal returns the amino encoding of the set.
func (r *ResultSet) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bz, nil
}

// Unmarshal decodes an amino encoded set.
func (r *ResultSet) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		r.Results = nil
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(bz, r); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]ledger.Model, len(kref))
	for i := range mods {
		mods[i] = ledger.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// DecodeResults parses the key and value sets of a query response.
func DecodeResults(keys, values []byte) ([]ledger.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return JoinResults(&k, &v)
}
