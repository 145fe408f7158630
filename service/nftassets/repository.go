package nftassets

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/keys"
)

const (
	tableCollections = "collections"
	tableTemplates   = "templates"
	tableAssets      = "assets"
	tableConfig      = "config"

	// FirstAssetId is the id of the first minted asset.
	FirstAssetId domain.AssetId = 1099511627776
)

// config counts issued ids.
type config struct {
	AssetCounter    domain.AssetId    `json:"asset_counter"`
	TemplateCounter domain.TemplateId `json:"template_counter"`
}

// Tables reads and writes the asset contract state.
type Tables struct {
	contract string
	store    domain.Store
}

func NewTables(contract domain.Name, s domain.Store) *Tables {
	return &Tables{contract: string(contract), store: s}
}

// NewReaderFactory returns the read view used by other contracts.
func NewReaderFactory(contract domain.Name) asset.ReaderFactory {
	return func(s domain.Store) asset.Reader {
		return NewTables(contract, s)
	}
}

func (t *Tables) collectionKey(name domain.Name) string {
	return keys.Row(t.contract, tableCollections, "", string(name))
}

func (t *Tables) templateKey(collection domain.Name, id domain.TemplateId) string {
	return keys.Row(t.contract, tableTemplates, string(collection), keys.Uint(uint64(id)))
}

func (t *Tables) assetKey(owner domain.Name, id domain.AssetId) string {
	return keys.Row(t.contract, tableAssets, string(owner), keys.Uint(uint64(id)))
}

func (t *Tables) FindCollection(c ctx.Ctx, name domain.Name) (*asset.Collection, error) {
	res := &asset.Collection{}
	if err := t.store.Get(c, t.collectionKey(name), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) PutCollection(c ctx.Ctx, col *asset.Collection) error {
	return t.store.Set(c, t.collectionKey(col.Name), col)
}

func (t *Tables) FindTemplate(c ctx.Ctx, collection domain.Name, id domain.TemplateId) (*asset.Template, error) {
	res := &asset.Template{}
	if err := t.store.Get(c, t.templateKey(collection, id), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) PutTemplate(c ctx.Ctx, tmpl *asset.Template) error {
	return t.store.Set(c, t.templateKey(tmpl.Collection, tmpl.TemplateId), tmpl)
}

func (t *Tables) FindAsset(c ctx.Ctx, owner domain.Name, id domain.AssetId) (*asset.Asset, error) {
	res := &asset.Asset{}
	if err := t.store.Get(c, t.assetKey(owner, id), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) FindAssets(c ctx.Ctx, owner domain.Name) ([]*asset.Asset, error) {
	ks, err := t.store.Keys(c, keys.TablePrefix(t.contract, tableAssets, string(owner)))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("store.Keys failed")
		return nil, err
	}

	res := make([]*asset.Asset, 0, len(ks))
	for _, k := range ks {
		a := &asset.Asset{}
		if err := t.store.Get(c, k, a); err != nil {
			c.WithFields(log.Fields{"err": err, "key": k}).Error("store.Get failed")
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}

func (t *Tables) LastAsset(c ctx.Ctx, owner domain.Name) (*asset.Asset, error) {
	ks, err := t.store.Keys(c, keys.TablePrefix(t.contract, tableAssets, string(owner)))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("store.Keys failed")
		return nil, err
	}
	if len(ks) == 0 {
		return nil, domain.ErrNotFound
	}

	res := &asset.Asset{}
	if err := t.store.Get(c, ks[len(ks)-1], res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) PutAsset(c ctx.Ctx, a *asset.Asset) error {
	return t.store.Set(c, t.assetKey(a.Owner, a.AssetId), a)
}

func (t *Tables) DelAsset(c ctx.Ctx, a *asset.Asset) error {
	return t.store.Del(c, t.assetKey(a.Owner, a.AssetId))
}

func (t *Tables) config(c ctx.Ctx) (*config, error) {
	res := &config{AssetCounter: FirstAssetId}
	if err := t.store.Get(c, keys.Singleton(t.contract, tableConfig), res); err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	return res, nil
}

// NextAssetId reserves an asset id.
func (t *Tables) NextAssetId(c ctx.Ctx) (domain.AssetId, error) {
	cfg, err := t.config(c)
	if err != nil {
		return 0, err
	}
	id := cfg.AssetCounter
	cfg.AssetCounter++
	return id, t.store.Set(c, keys.Singleton(t.contract, tableConfig), cfg)
}

// LastTemplateId is the id of the most recently created template, 0 if none.
func (t *Tables) LastTemplateId(c ctx.Ctx) (domain.TemplateId, error) {
	cfg, err := t.config(c)
	if err != nil {
		return 0, err
	}
	return cfg.TemplateCounter, nil
}

// NextTemplateId reserves a template id, the first one is 1.
func (t *Tables) NextTemplateId(c ctx.Ctx) (domain.TemplateId, error) {
	cfg, err := t.config(c)
	if err != nil {
		return 0, err
	}
	cfg.TemplateCounter++
	return cfg.TemplateCounter, t.store.Set(c, keys.Singleton(t.contract, tableConfig), cfg)
}
