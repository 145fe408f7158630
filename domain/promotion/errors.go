package promotion

import "errors"

var (
	// input validation
	ErrOnlyOneSpot          = errors.New("only one spot can nft be redeemed for promotion")
	ErrInvalidMemoWords     = errors.New("invalid word count in memo")
	ErrInvalidPromotionType = errors.New("invalid promotion type")
	ErrAuctionOnlyGold      = errors.New("invalid promotion type - auction only allowed for gold spot")

	// eligibility
	ErrCollectionNotExists   = errors.New("collection not exists")
	ErrCollectionBlacklisted = errors.New("collection blacklisted")
	ErrCollectionNotEligible = errors.New("collection neither verified nor shielded")
	ErrAuctionNotExists      = errors.New("auction not exists")
	ErrSilverSpotExpected    = errors.New("invalid nft - silver spot expected")

	// temporal
	ErrAuctionNotStarted = errors.New("auction not started yet")
	ErrAuctionExpiring   = errors.New("auction expired or close to expiration")
	ErrAlreadyPromoted   = errors.New("collection already promoted")

	// configuration and bookkeeping
	ErrInvalidDuration       = errors.New("promotion duration must be greater than 0")
	ErrMarketBalanceNotFound = errors.New("market balance not found")
)
