package nftmarket

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/keys"
	"github.com/x-xyz/spotmarket/domain/market"
)

const (
	tableAuctions = "auctions"
	tableBalances = "balances"
	tableConfig   = "config"
)

type config struct {
	AuctionCounter domain.AuctionId `json:"auction_counter"`
}

type Tables struct {
	contract string
	store    domain.Store
}

func NewTables(contract domain.Name, s domain.Store) *Tables {
	return &Tables{contract: string(contract), store: s}
}

// NewReaderFactory returns the read view used by other contracts.
func NewReaderFactory(contract domain.Name) market.ReaderFactory {
	return func(s domain.Store) market.Reader {
		return NewTables(contract, s)
	}
}

func (t *Tables) auctionKey(id domain.AuctionId) string {
	return keys.Row(t.contract, tableAuctions, "", keys.Uint(uint64(id)))
}

func (t *Tables) balanceKey(owner domain.Name) string {
	return keys.Row(t.contract, tableBalances, "", string(owner))
}

func (t *Tables) FindAuction(c ctx.Ctx, id domain.AuctionId) (*market.Auction, error) {
	res := &market.Auction{}
	if err := t.store.Get(c, t.auctionKey(id), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) FindAuctions(c ctx.Ctx) ([]*market.Auction, error) {
	ks, err := t.store.Keys(c, keys.TablePrefix(t.contract, tableAuctions, ""))
	if err != nil {
		c.WithField("err", err).Error("store.Keys failed")
		return nil, err
	}

	res := make([]*market.Auction, 0, len(ks))
	for _, k := range ks {
		a := &market.Auction{}
		if err := t.store.Get(c, k, a); err != nil {
			c.WithFields(log.Fields{"err": err, "key": k}).Error("store.Get failed")
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}

func (t *Tables) PutAuction(c ctx.Ctx, a *market.Auction) error {
	return t.store.Set(c, t.auctionKey(a.AuctionId), a)
}

func (t *Tables) DelAuction(c ctx.Ctx, id domain.AuctionId) error {
	return t.store.Del(c, t.auctionKey(id))
}

func (t *Tables) NextAuctionId(c ctx.Ctx) (domain.AuctionId, error) {
	key := keys.Singleton(t.contract, tableConfig)
	cfg := &config{}
	if err := t.store.Get(c, key, cfg); err != nil && err != domain.ErrNotFound {
		return 0, err
	}
	cfg.AuctionCounter++
	return cfg.AuctionCounter, t.store.Set(c, key, cfg)
}

func (t *Tables) FindBalance(c ctx.Ctx, owner domain.Name) (*market.Balance, error) {
	res := &market.Balance{}
	if err := t.store.Get(c, t.balanceKey(owner), res); err != nil {
		return nil, err
	}
	return res, nil
}

// AddBalance credits q to owner, creating the row on first credit.
func (t *Tables) AddBalance(c ctx.Ctx, owner domain.Name, q domain.Quantity) error {
	if q.Amount == 0 {
		return nil
	}
	bal, err := t.FindBalance(c, owner)
	if err == domain.ErrNotFound {
		bal = &market.Balance{Owner: owner}
	} else if err != nil {
		return err
	}

	for i := range bal.Quantities {
		if bal.Quantities[i].Symbol == q.Symbol {
			bal.Quantities[i].Amount += q.Amount
			return t.store.Set(c, t.balanceKey(owner), bal)
		}
	}
	bal.Quantities = append(bal.Quantities, q)
	return t.store.Set(c, t.balanceKey(owner), bal)
}

// SubBalance debits q from owner. Emptied quantities are removed and an empty
// row is erased.
func (t *Tables) SubBalance(c ctx.Ctx, owner domain.Name, q domain.Quantity) error {
	bal, err := t.FindBalance(c, owner)
	if err == domain.ErrNotFound {
		return market.ErrInsufficientBalance
	} else if err != nil {
		return err
	}

	for i := range bal.Quantities {
		if bal.Quantities[i].Symbol != q.Symbol {
			continue
		}
		if bal.Quantities[i].Amount < q.Amount {
			return market.ErrInsufficientBalance
		}
		bal.Quantities[i].Amount -= q.Amount
		if bal.Quantities[i].Amount == 0 {
			bal.Quantities = append(bal.Quantities[:i], bal.Quantities[i+1:]...)
		}
		if len(bal.Quantities) == 0 {
			return t.store.Del(c, t.balanceKey(owner))
		}
		return t.store.Set(c, t.balanceKey(owner), bal)
	}
	return market.ErrInsufficientBalance
}
