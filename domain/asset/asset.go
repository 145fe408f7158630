package asset

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

const (
	ActTransfer       domain.ActionName = "transfer"
	ActMintAsset      domain.ActionName = "mintasset"
	ActBurnAsset      domain.ActionName = "burnasset"
	ActCreateCol      domain.ActionName = "createcol"
	ActCreateTemplate domain.ActionName = "createtempl"
)

type Collection struct {
	Name      domain.Name `json:"collection_name"`
	Author    domain.Name `json:"author"`
	MarketFee float64     `json:"market_fee"`
}

type Template struct {
	TemplateId   domain.TemplateId `json:"template_id"`
	Collection   domain.Name       `json:"collection_name"`
	MaxSupply    uint32            `json:"max_supply"`
	IssuedSupply uint32            `json:"issued_supply"`
}

// Asset is stored in the table scoped by its owner.
type Asset struct {
	AssetId    domain.AssetId    `json:"asset_id"`
	Owner      domain.Name       `json:"owner"`
	Collection domain.Name       `json:"collection_name"`
	TemplateId domain.TemplateId `json:"template_id"`
}

type Transfer struct {
	From     domain.Name      `json:"from"`
	To       domain.Name      `json:"to"`
	AssetIds []domain.AssetId `json:"asset_ids"`
	Memo     string           `json:"memo"`
}

type MintAsset struct {
	AuthorizedMinter domain.Name       `json:"authorized_minter"`
	Collection       domain.Name       `json:"collection_name"`
	TemplateId       domain.TemplateId `json:"template_id"`
	NewOwner         domain.Name       `json:"new_asset_owner"`
}

type BurnAsset struct {
	AssetOwner domain.Name    `json:"asset_owner"`
	AssetId    domain.AssetId `json:"asset_id"`
}

type CreateCollection struct {
	Author     domain.Name `json:"author"`
	Collection domain.Name `json:"collection_name"`
	MarketFee  float64     `json:"market_fee"`
}

type CreateTemplate struct {
	AuthorizedCreator domain.Name `json:"authorized_creator"`
	Collection        domain.Name `json:"collection_name"`
	MaxSupply         uint32      `json:"max_supply"`
}

// Reader is the read view of the asset contract tables.
type Reader interface {
	FindCollection(c ctx.Ctx, name domain.Name) (*Collection, error)
	FindTemplate(c ctx.Ctx, collection domain.Name, id domain.TemplateId) (*Template, error)
	FindAsset(c ctx.Ctx, owner domain.Name, id domain.AssetId) (*Asset, error)
	// LastAsset returns the owner's asset with the highest id.
	LastAsset(c ctx.Ctx, owner domain.Name) (*Asset, error)
	FindAssets(c ctx.Ctx, owner domain.Name) ([]*Asset, error)
}

type ReaderFactory func(s domain.Store) Reader

func TransferAction(contract, from, to domain.Name, ids []domain.AssetId, memo string) chain.Action {
	return chain.NewAction(contract, ActTransfer, from, Transfer{
		From:     from,
		To:       to,
		AssetIds: ids,
		Memo:     memo,
	})
}

func MintAction(contract, minter, collection domain.Name, template domain.TemplateId, owner domain.Name) chain.Action {
	return chain.NewAction(contract, ActMintAsset, minter, MintAsset{
		AuthorizedMinter: minter,
		Collection:       collection,
		TemplateId:       template,
		NewOwner:         owner,
	})
}

func BurnAction(contract, owner domain.Name, id domain.AssetId) chain.Action {
	return chain.NewAction(contract, ActBurnAsset, owner, BurnAsset{
		AssetOwner: owner,
		AssetId:    id,
	})
}
