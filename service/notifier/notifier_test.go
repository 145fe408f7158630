package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/market"
	"github.com/x-xyz/spotmarket/domain/promotion"
)

type fakeSender struct {
	sent chan *discordgo.MessageEmbed
	err  error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.sent <- embed
	return &discordgo.Message{ChannelID: channelID}, f.err
}

type notifierSuite struct {
	suite.Suite

	sender *fakeSender
	im     chain.ReceiptSink
}

func TestNotifierSuite(t *testing.T) {
	suite.Run(t, new(notifierSuite))
}

func (s *notifierSuite) SetupTest() {
	s.sender = &fakeSender{sent: make(chan *discordgo.MessageEmbed, 8)}
	s.im = NewWithSender(&Cfg{
		ChannelId:  "chan",
		Gatekeeper: "gatekeeper",
		Host:       "host",
		Market:     "market",
	}, s.sender)
}

func (s *notifierSuite) next() *discordgo.MessageEmbed {
	select {
	case m := <-s.sender.sent:
		return m
	case <-time.After(time.Second):
		s.FailNow("no message sent")
		return nil
	}
}

func (s *notifierSuite) TestPromotionAndAuction() {
	r := &chain.Receipt{
		TxId: "tx",
		Time: time.Unix(1700000000, 0),
		Traces: []chain.ActionTrace{
			{
				Receiver: "gatekeeper",
				Action: chain.Action{
					Account: "gatekeeper",
					Name:    promotion.ActLogCollection,
					Data: &promotion.LogCollectionPromotion{
						Collection:   "col1",
						PromotedBy:   "alice",
						SpotType:     promotion.SpotTypeSilver,
						PromotionEnd: 1700086400,
					},
				},
			},
			{
				Receiver: "market",
				Action: chain.Action{
					Account: "market",
					Name:    market.ActAnnounceAuction,
					Data: &market.AnnounceAuction{
						Seller:      "host",
						AssetIds:    []domain.AssetId{7},
						StartingBid: domain.NewQuantity(63630515, domain.Symbol{Precision: 4, Code: "XPR"}),
						Duration:    3600,
					},
				},
			},
		},
	}

	s.NoError(s.im.HandleReceipt(ctx.Background(), r))

	titles := map[string]*discordgo.MessageEmbed{}
	for i := 0; i < 2; i++ {
		m := s.next()
		titles[m.Title] = m
	}
	s.Require().Contains(titles, "Collection promoted!")
	s.Equal("col1", titles["Collection promoted!"].Description)
	s.Require().Contains(titles, "Promotion spot up for auction!")
	s.Equal("7", titles["Promotion spot up for auction!"].Description)
}

func (s *notifierSuite) TestIgnoresOtherTraces() {
	r := &chain.Receipt{
		Traces: []chain.ActionTrace{
			{
				// notification copy of the log action
				Receiver: "host",
				Action:   chain.Action{Account: "gatekeeper", Name: promotion.ActLogAuction},
			},
			{
				Receiver: "market",
				Action: chain.Action{
					Account: "market",
					Name:    market.ActAnnounceAuction,
					Data:    &market.AnnounceAuction{Seller: "bob"},
				},
			},
		},
	}

	s.NoError(s.im.HandleReceipt(ctx.Background(), r))
	select {
	case m := <-s.sender.sent:
		s.Failf("unexpected message", "%v", m.Title)
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *notifierSuite) TestSendFailureIsNotReported() {
	s.sender.err = errors.New("discord down")
	r := &chain.Receipt{
		Traces: []chain.ActionTrace{{
			Receiver: "gatekeeper",
			Action: chain.Action{
				Account: "gatekeeper",
				Name:    promotion.ActLogAuction,
				Data:    &promotion.LogAuctionPromotion{AuctionId: 3, SpotType: promotion.SpotTypeGold},
			},
		}},
	}

	s.NoError(s.im.HandleReceipt(ctx.Background(), r))
	s.Equal("auction #3", s.next().Description)
}
