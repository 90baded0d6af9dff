package registry

// Store is the durable side of the registry state surface. Every method
// that writes performs its writes in a single transaction.
type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	WriteCollection(c *Collection) error
	DeleteCollection(id uint64) error
	ListCollections() ([]*Collection, error)

	WriteToken(t *Token) error
	ListTokens() ([]*Token, error)

	WriteTransfers(recs []*TransferRecord) error
	ListTransfers(tokenID uint64) ([]*TransferRecord, error)
	ListTransferTokens() ([]uint64, error)

	WriteDataList(values []string) error
	ReadDataList() ([]string, error)
}

// Gate answers capability checks for mutating operations. Role storage
// lives outside the registry so the core can be tested without it.
type Gate interface {
	HasRole(role, principal string) bool
}

// BalanceLedger owns per-account per-token balances. The registry drives
// every mutation and observes committed deltas through the hook.
type BalanceLedger interface {
	Mint(operator, to string, id, amount uint64) error
	MintBatch(operator, to string, ids, amounts []uint64) error
	Burn(operator, from string, id, amount uint64) error
	Transfer(operator, from, to string, id, amount uint64) error
	TransferBatch(operator, from, to string, ids, amounts []uint64) error

	BalanceOf(account string, id uint64) uint64
	TotalSupply(id uint64) uint64
	Known(id uint64) bool

	SetApprovalForAll(owner, operator string, approved bool) error
	IsApprovedForAll(owner, operator string) bool

	SetHook(hook func(operator, from, to string, ids, amounts []uint64))
	Pause() error
	Resume() error
	Paused() bool
}

// FungibleLedger moves external fungible assets on behalf of the registry,
// e.g. collecting the price of a swap from a buyer.
type FungibleLedger interface {
	TransferFrom(asset, spender, from, to string, amount uint64) error
}
