package entities

// Direction tells whether a transaction moved funds into or out of the
// account being viewed.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

type directionKey struct {
	isTopup           bool
	senderIsAccount   bool
	receiverIsAccount bool
}

// Every combination is listed so each one can be tested on its own.
// A topup from the account to itself is self-funding and therefore incoming.
var directions = map[directionKey]Direction{
	{isTopup: true, senderIsAccount: true, receiverIsAccount: true}:    DirectionIncoming,
	{isTopup: true, senderIsAccount: true, receiverIsAccount: false}:   DirectionOutgoing,
	{isTopup: true, senderIsAccount: false, receiverIsAccount: true}:   DirectionIncoming,
	{isTopup: true, senderIsAccount: false, receiverIsAccount: false}:  DirectionOutgoing,
	{isTopup: false, senderIsAccount: true, receiverIsAccount: true}:   DirectionIncoming,
	{isTopup: false, senderIsAccount: true, receiverIsAccount: false}:  DirectionOutgoing,
	{isTopup: false, senderIsAccount: false, receiverIsAccount: true}:  DirectionIncoming,
	{isTopup: false, senderIsAccount: false, receiverIsAccount: false}: DirectionOutgoing,
}

// Classify maps the three facts about a transaction to its direction.
func Classify(isTopup, senderIsAccount, receiverIsAccount bool) Direction {
	return directions[directionKey{
		isTopup:           isTopup,
		senderIsAccount:   senderIsAccount,
		receiverIsAccount: receiverIsAccount,
	}]
}

// Arrow is the short marker shown next to a transaction row.
func (d Direction) Arrow() string {
	if d == DirectionIncoming {
		return "<- Incoming"
	}
	return "-> Outgoing"
}
