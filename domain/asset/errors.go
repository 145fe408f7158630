package asset

import "errors"

var (
	ErrCollectionExists   = errors.New("collection already exists")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrMaxSupplyReached   = errors.New("template max supply reached")
	ErrNotAuthorized      = errors.New("not authorized for collection")
	ErrAssetNotOwned      = errors.New("asset not owned by sender")
	ErrNoAssets           = errors.New("no assets to transfer")
	ErrSelfTransfer       = errors.New("can't transfer assets to yourself")
	ErrInvalidMarketFee   = errors.New("market fee must be between 0 and 0.15")
)
