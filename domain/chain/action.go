package chain

import (
	"time"

	"github.com/ethereum/go-ethereum/event"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

// Action is a message to a contract. Data is either a payload struct or raw JSON;
// the engine decodes it into the payload type the receiving handler declares.
type Action struct {
	Account       domain.Name       `json:"account" validate:"required"`
	Name          domain.ActionName `json:"name" validate:"required"`
	Authorization []domain.Name     `json:"authorization"`
	Data          interface{}       `json:"data"`
}

// NewAction builds an action authorized by a single actor.
func NewAction(account domain.Name, name domain.ActionName, actor domain.Name, data interface{}) Action {
	return Action{
		Account:       account,
		Name:          name,
		Authorization: []domain.Name{actor},
		Data:          data,
	}
}

// ApplyContext is what a handler sees while it runs.
type ApplyContext interface {
	Ctx() ctx.Ctx
	// Receiver is the contract whose handler is running.
	Receiver() domain.Name
	// FirstReceiver is the contract the action was addressed to. It differs from
	// Receiver inside notification handlers.
	FirstReceiver() domain.Name
	Action() Action
	// Now is the transaction time, identical for every handler of a transaction.
	Now() time.Time
	NowSec() int64
	Store() domain.Store

	HasAuth(account domain.Name) bool
	RequireAuth(account domain.Name) error
	// RequireRecipient notifies account after the current action's handler returns.
	RequireRecipient(account domain.Name)
	// SendInline queues an action that runs after the current action and all of
	// its notifications returned. It may only carry the receiver's authority.
	SendInline(act Action) error
}

type HandlerFunc func(ac ApplyContext, data interface{}) error

// Handler is one entry of a dispatch table. Payload returns a pointer to an
// empty payload the action data is decoded into before Handle runs.
type Handler struct {
	Payload func() interface{}
	Handle  HandlerFunc
}

// AnyCode matches notifications from every contract.
const AnyCode domain.Name = "*"

// Notify selects a notification by the contract that dispatched it and its action.
type Notify struct {
	Code   domain.Name
	Action domain.ActionName
}

// Dispatch maps action names to handlers. Actions run when the contract is the
// first receiver, Notifications when it was named by RequireRecipient. An exact
// Code match wins over AnyCode.
type Dispatch struct {
	Actions       map[domain.ActionName]Handler
	Notifications map[Notify]Handler
}

type Contract interface {
	Account() domain.Name
	Dispatch() Dispatch
}

type ActionTrace struct {
	Seq      int         `json:"seq"`
	Depth    int         `json:"depth"`
	Receiver domain.Name `json:"receiver"`
	Action   Action      `json:"action"`
}

// Receipt is published for every committed transaction.
type Receipt struct {
	TxId   string        `json:"txId" bson:"txId"`
	Time   time.Time     `json:"time" bson:"time"`
	Traces []ActionTrace `json:"traces" bson:"traces"`
}

// Engine runs transactions one at a time against the state store.
type Engine interface {
	Deploy(contracts ...Contract) error
	PushTransaction(c ctx.Ctx, actions ...Action) (*Receipt, error)
	// Read runs fn against committed state while no transaction is running.
	Read(c ctx.Ctx, fn func(s domain.Store) error) error
	SubscribeReceipts(ch chan<- *Receipt) event.Subscription
	Now() time.Time
}
