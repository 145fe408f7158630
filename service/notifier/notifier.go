// Package notifier posts accepted promotions and started spot auctions to a
// discord channel.
package notifier

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/market"
	"github.com/x-xyz/spotmarket/domain/promotion"
)

// Sender is the part of the discord session the notifier needs.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type Cfg struct {
	BotKey    string
	ChannelId string

	Gatekeeper domain.Name
	Host       domain.Name
	Market     domain.Name
}

type notifier struct {
	cfg    Cfg
	sender Sender
	pool   *goroutines.Pool
}

// New opens a discord session with the bot key.
func New(cfg *Cfg) (chain.ReceiptSink, error) {
	session, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return NewWithSender(cfg, session), nil
}

func NewWithSender(cfg *Cfg, sender Sender) chain.ReceiptSink {
	return &notifier{
		cfg:    *cfg,
		sender: sender,
		pool:   goroutines.NewPool(4, goroutines.WithTaskQueueLength(256)),
	}
}

func (im *notifier) Name() string {
	return "discord"
}

// HandleReceipt schedules the messages and returns. Send failures are only logged.
func (im *notifier) HandleReceipt(c ctx.Ctx, r *chain.Receipt) error {
	for _, tr := range r.Traces {
		msg := im.embedOf(tr, r.Time)
		if msg == nil {
			continue
		}
		if err := im.pool.Schedule(func() {
			if _, err := im.sender.ChannelMessageSendEmbed(im.cfg.ChannelId, msg); err != nil {
				c.WithFields(log.Fields{
					"err":   err,
					"title": msg.Title,
				}).Warn("ChannelMessageSendEmbed failed")
			}
		}); err != nil {
			c.WithField("err", err).Warn("pool.Schedule failed")
		}
	}
	return nil
}

func (im *notifier) embedOf(tr chain.ActionTrace, at time.Time) *discordgo.MessageEmbed {
	act := tr.Action
	if tr.Receiver != act.Account {
		return nil
	}

	switch {
	case act.Account == im.cfg.Gatekeeper && act.Name == promotion.ActLogCollection:
		p := promotion.LogCollectionPromotion{}
		if decode(act.Data, &p) != nil {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Collection promoted!",
			Description: string(p.Collection),
			Timestamp:   at.Format(time.RFC3339),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Spot", Value: string(p.SpotType)},
				{Name: "Promoted by", Value: string(p.PromotedBy)},
				{Name: "Until", Value: time.Unix(p.PromotionEnd, 0).UTC().Format(time.RFC3339)},
			},
		}
	case act.Account == im.cfg.Gatekeeper && act.Name == promotion.ActLogAuction:
		p := promotion.LogAuctionPromotion{}
		if decode(act.Data, &p) != nil {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Auction promoted!",
			Description: fmt.Sprintf("auction #%s", p.AuctionId),
			Timestamp:   at.Format(time.RFC3339),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Spot", Value: string(p.SpotType)},
				{Name: "Promoted by", Value: string(p.PromotedBy)},
			},
		}
	case act.Account == im.cfg.Market && act.Name == market.ActAnnounceAuction:
		p := market.AnnounceAuction{}
		if decode(act.Data, &p) != nil || p.Seller != im.cfg.Host {
			return nil
		}
		ids := make([]string, 0, len(p.AssetIds))
		for _, id := range p.AssetIds {
			ids = append(ids, id.String())
		}
		return &discordgo.MessageEmbed{
			Title:       "Promotion spot up for auction!",
			Description: strings.Join(ids, ", "),
			Timestamp:   at.Format(time.RFC3339),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Starting bid", Value: p.StartingBid.String()},
				{Name: "Ends", Value: at.Add(time.Duration(p.Duration) * time.Second).UTC().Format(time.RFC3339)},
			},
		}
	}
	return nil
}

func decode(data interface{}, p interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, p)
}
