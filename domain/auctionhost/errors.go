package auctionhost

import "errors"

var (
	// bookkeeping
	ErrMarketBalanceNotFound = errors.New("market balance not found")
	ErrAuctionNotExists      = errors.New("auction not exists")
	ErrAuctionRunning        = errors.New("auction still running")
	ErrForeignSeller         = errors.New("auction created by somebody else")
	ErrAuctionHasBids        = errors.New("auction has bids and cannot be cancelled")

	// forwarded spots
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidMemo   = errors.New("invalid memo")
	ErrOnlyOneSpot   = errors.New("only one spot can be auctioned at a time")
	ErrSilverOnly    = errors.New("action only allowed for silver spot nft")
	ErrNoOwnedAsset  = errors.New("no asset owned by host")

	// configuration
	ErrStartPrice        = errors.New("start price must be greater than 0")
	ErrReAuctionDuration = errors.New("re-auction duration must be longer than one day")

	// oracle, the pair name is prepended on wrap
	ErrFeedNotFound     = errors.New("feed not found")
	ErrWrongFeedName    = errors.New("wrong feed name - expected")
	ErrFeedDataNotFound = errors.New("feed data not found")
	ErrNonPositivePrice = errors.New("aggregated price must be greater than 0")

	// pricing
	ErrPriceOutOfRange = errors.New("starting price out of range")
)
