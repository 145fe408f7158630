// Package nftassets is a minimal non-fungible asset contract: collections,
// templates and owner scoped assets with mint, burn and transfer.
package nftassets

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/chain"
)

// MaxMarketFee caps the royalty a collection may ask for.
const MaxMarketFee = 0.15

type contract struct {
	self domain.Name
}

func New(self domain.Name) chain.Contract {
	return &contract{self: self}
}

func (im *contract) Account() domain.Name {
	return im.self
}

func (im *contract) Dispatch() chain.Dispatch {
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			asset.ActCreateCol: {
				Payload: func() interface{} { return &asset.CreateCollection{} },
				Handle:  im.createCollection,
			},
			asset.ActCreateTemplate: {
				Payload: func() interface{} { return &asset.CreateTemplate{} },
				Handle:  im.createTemplate,
			},
			asset.ActMintAsset: {
				Payload: func() interface{} { return &asset.MintAsset{} },
				Handle:  im.mint,
			},
			asset.ActBurnAsset: {
				Payload: func() interface{} { return &asset.BurnAsset{} },
				Handle:  im.burn,
			},
			asset.ActTransfer: {
				Payload: func() interface{} { return &asset.Transfer{} },
				Handle:  im.transfer,
			},
		},
	}
}

func (im *contract) createCollection(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.CreateCollection)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.Author); err != nil {
		return err
	}
	if p.MarketFee < 0 || p.MarketFee > MaxMarketFee {
		return asset.ErrInvalidMarketFee
	}

	tables := NewTables(im.self, ac.Store())
	if _, err := tables.FindCollection(c, p.Collection); err == nil {
		return asset.ErrCollectionExists
	} else if err != domain.ErrNotFound {
		return err
	}

	return tables.PutCollection(c, &asset.Collection{
		Name:      p.Collection,
		Author:    p.Author,
		MarketFee: p.MarketFee,
	})
}

func (im *contract) createTemplate(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.CreateTemplate)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.AuthorizedCreator); err != nil {
		return err
	}

	tables := NewTables(im.self, ac.Store())
	col, err := tables.FindCollection(c, p.Collection)
	if err == domain.ErrNotFound {
		return asset.ErrCollectionNotFound
	} else if err != nil {
		return err
	}
	if col.Author != p.AuthorizedCreator {
		return asset.ErrNotAuthorized
	}

	id, err := tables.NextTemplateId(c)
	if err != nil {
		return err
	}
	return tables.PutTemplate(c, &asset.Template{
		TemplateId: id,
		Collection: p.Collection,
		MaxSupply:  p.MaxSupply,
	})
}

func (im *contract) mint(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.MintAsset)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.AuthorizedMinter); err != nil {
		return err
	}

	tables := NewTables(im.self, ac.Store())
	col, err := tables.FindCollection(c, p.Collection)
	if err == domain.ErrNotFound {
		return asset.ErrCollectionNotFound
	} else if err != nil {
		return err
	}
	if col.Author != p.AuthorizedMinter {
		return asset.ErrNotAuthorized
	}

	tmpl, err := tables.FindTemplate(c, p.Collection, p.TemplateId)
	if err == domain.ErrNotFound {
		return asset.ErrTemplateNotFound
	} else if err != nil {
		return err
	}
	// zero max supply means unlimited
	if tmpl.MaxSupply > 0 && tmpl.IssuedSupply >= tmpl.MaxSupply {
		return asset.ErrMaxSupplyReached
	}
	tmpl.IssuedSupply++
	if err := tables.PutTemplate(c, tmpl); err != nil {
		return err
	}

	id, err := tables.NextAssetId(c)
	if err != nil {
		return err
	}
	return tables.PutAsset(c, &asset.Asset{
		AssetId:    id,
		Owner:      p.NewOwner,
		Collection: p.Collection,
		TemplateId: p.TemplateId,
	})
}

func (im *contract) burn(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.BurnAsset)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.AssetOwner); err != nil {
		return err
	}

	tables := NewTables(im.self, ac.Store())
	a, err := tables.FindAsset(c, p.AssetOwner, p.AssetId)
	if err == domain.ErrNotFound {
		return xerrors.Errorf("asset %s: %w", p.AssetId, asset.ErrAssetNotOwned)
	} else if err != nil {
		return err
	}
	return tables.DelAsset(c, a)
}

func (im *contract) transfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.Transfer)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.From); err != nil {
		return err
	}
	if p.From == p.To {
		return asset.ErrSelfTransfer
	}
	if len(p.AssetIds) == 0 {
		return asset.ErrNoAssets
	}

	tables := NewTables(im.self, ac.Store())
	for _, id := range p.AssetIds {
		a, err := tables.FindAsset(c, p.From, id)
		if err == domain.ErrNotFound {
			return xerrors.Errorf("asset %s: %w", id, asset.ErrAssetNotOwned)
		} else if err != nil {
			return err
		}
		if err := tables.DelAsset(c, a); err != nil {
			return err
		}
		a.Owner = p.To
		if err := tables.PutAsset(c, a); err != nil {
			return err
		}
	}

	ac.RequireRecipient(p.From)
	ac.RequireRecipient(p.To)
	return nil
}
