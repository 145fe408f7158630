package market

import "errors"

var (
	ErrInvalidFeeStructure = errors.New("invalid fee structure")
	ErrAuctionNotFound     = errors.New("no auction with this auction_id exists")
	ErrAuctionNotStarted   = errors.New("auction assets not transferred yet")
	ErrAuctionFinished     = errors.New("auction is already finished")
	ErrAuctionNotFinished  = errors.New("auction is not finished yet")
	ErrAuctionNoBids       = errors.New("auction has no bids")
	ErrAuctionHasBids      = errors.New("auction already has bids")
	ErrAlreadyClaimed      = errors.New("auction already claimed")
	ErrBidTooLow           = errors.New("bid is too low")
	ErrAssetsAlreadyListed = errors.New("assets already in an auction")
	ErrNoMatchingAuction   = errors.New("no announced auction for transferred assets")
	ErrInsufficientBalance = errors.New("insufficient market balance")
	ErrUnsupportedToken    = errors.New("token not supported")
	ErrInvalidDuration     = errors.New("auction duration out of range")
	ErrInvalidStartingBid  = errors.New("starting bid must be positive")
	ErrSellerCannotBid     = errors.New("seller can't bid on own auction")
)
