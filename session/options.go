package session

import "time"

// Option sets one field of a Record being built with New.
type Option func(*Record)

// New builds a Record from field options. Fields that are not set keep
// their zero value; Currency defaults to USD.
func New(opts ...Option) Record {
	r := Record{Currency: USD}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func WithWin(amount float64) Option {
	return func(r *Record) { r.WinAmount = amount }
}

func WithStakes(sb, bb float64) Option {
	return func(r *Record) {
		r.SmallBlind = sb
		r.BigBlind = bb
	}
}

func WithCurrency(c Currency) Option {
	return func(r *Record) { r.Currency = c }
}

func WithLocation(loc string) Option {
	return func(r *Record) { r.Location = loc }
}

func WithDate(d time.Time) Option {
	return func(r *Record) { r.Date = d }
}

// WithHands records the number of hands played. Negative values leave
// the hand count missing.
func WithHands(n int) Option {
	return func(r *Record) {
		if n < 0 {
			r.NumHands = nil
			return
		}
		r.NumHands = &n
	}
}

func WithID(id string) Option {
	return func(r *Record) { r.ID = id }
}
