// Package chain is the thin adapter over the Substrate RPC client. It
// carries framed MIDDS payloads onto the chain and reads them back; all
// validation happens before bytes reach this package.
package chain

import (
	"context"
	"fmt"
	"sync/atomic"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"

	"melodie/pkg/platform/circuit"
	"melodie/pkg/platform/sentinel"
)

// Submitter carries a framed record onto the chain.
type Submitter interface {
	SubmitRecord(ctx context.Context, framed []byte) (types.Hash, error)
}

// StorageReader fetches raw storage values, optionally at a block.
type StorageReader interface {
	StorageAt(ctx context.Context, key types.StorageKey, blockHash *types.Hash) ([]byte, bool, error)
}

// Client wraps a Substrate node connection. A breaker guards submission
// so a dead node sheds load fast instead of timing out every request.
type Client struct {
	api     *gsrpc.SubstrateAPI
	signer  signature.KeyringPair
	breaker *circuit.Breaker
	probes  atomic.Uint64

	// submit performs the actual extrinsic submission; tests substitute
	// it to drive the breaker without a node.
	submit func(ctx context.Context, framed []byte) (types.Hash, error)
}

// While the breaker is open, one call in probeEvery is let through to
// test whether the node recovered.
const probeEvery = 5

// Dial connects to a Substrate node. Returns nil when the URL is empty
// (chain submission disabled).
func Dial(url string, signer signature.KeyringPair) (*Client, error) {
	if url == "" {
		return nil, nil
	}
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, fmt.Errorf("chain: dial %s: %w", url, err)
	}
	c := &Client{
		api:     api,
		signer:  signer,
		breaker: circuit.New("chain", circuit.WithFailureThreshold(3)),
	}
	c.submit = c.submitRecord
	return c, nil
}

// StorageAt fetches a raw storage value. The second return is false when
// the key holds no value.
func (c *Client) StorageAt(_ context.Context, key types.StorageKey, blockHash *types.Hash) ([]byte, bool, error) {
	var (
		raw *types.StorageDataRaw
		err error
	)
	if blockHash != nil {
		raw, err = c.api.RPC.State.GetStorageRaw(key, *blockHash)
	} else {
		raw, err = c.api.RPC.State.GetStorageRawLatest(key)
	}
	if err != nil {
		return nil, false, fmt.Errorf("chain: storage fetch: %w", err)
	}
	if raw == nil || len(*raw) == 0 {
		return nil, false, nil
	}
	return *raw, true, nil
}

// SubmitRecord signs and submits a register extrinsic carrying the framed
// payload, returning the extrinsic hash. While the breaker is open the
// call fails immediately with sentinel.ErrUnavailable.
func (c *Client) SubmitRecord(ctx context.Context, framed []byte) (types.Hash, error) {
	if c.breaker.IsOpen() && c.probes.Add(1)%probeEvery != 0 {
		return types.Hash{}, fmt.Errorf("chain: submit: %w", sentinel.ErrUnavailable)
	}
	hash, err := c.submit(ctx, framed)
	if err != nil {
		c.breaker.RecordFailure()
		return types.Hash{}, err
	}
	c.breaker.RecordSuccess()
	return hash, nil
}

func (c *Client) submitRecord(_ context.Context, framed []byte) (types.Hash, error) {
	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: metadata: %w", err)
	}
	call, err := types.NewCall(meta, "Midds.register", types.Bytes(framed))
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: build call: %w", err)
	}
	ext := types.NewExtrinsic(call)

	genesisHash, err := c.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: genesis hash: %w", err)
	}
	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: runtime version: %w", err)
	}
	key, err := types.CreateStorageKey(meta, "System", "Account", c.signer.PublicKey)
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: account key: %w", err)
	}
	var accountInfo types.AccountInfo
	ok, err := c.api.RPC.State.GetStorageLatest(key, &accountInfo)
	if err != nil || !ok {
		return types.Hash{}, fmt.Errorf("chain: account info: %w", err)
	}

	err = ext.Sign(c.signer, types.SignatureOptions{
		BlockHash:          genesisHash,
		Era:                types.ExtrinsicEra{IsImmortalEra: true},
		GenesisHash:        genesisHash,
		Nonce:              types.NewUCompactFromUInt(uint64(accountInfo.Nonce)),
		SpecVersion:        rv.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: rv.TransactionVersion,
	})
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: sign: %w", err)
	}

	hash, err := c.api.RPC.Author.SubmitExtrinsic(ext)
	if err != nil {
		return types.Hash{}, fmt.Errorf("chain: submit: %w", err)
	}
	return hash, nil
}
