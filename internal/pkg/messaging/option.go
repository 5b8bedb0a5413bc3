package messaging

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscribeOptions)

type subscribeOptions struct {
	channel      string
	queueGroup   string
	group        string
	subscription string
	autoAck      bool
	concurrency  int
	maxInFlight  int
}

func newSubscribeOptions(opts []SubscribeOption) subscribeOptions {
	so := subscribeOptions{concurrency: 1, maxInFlight: 1}
	for _, opt := range opts {
		opt(&so)
	}

	return so
}

// WithChannel sets the topic (nsq topic, nats subject, kafka topic).
func WithChannel(name string) SubscribeOption {
	return func(o *subscribeOptions) { o.channel = name }
}

// WithQueueGroup sets the nats queue group or nsq channel, so replicas
// share the stream instead of each receiving every message.
func WithQueueGroup(name string) SubscribeOption {
	return func(o *subscribeOptions) { o.queueGroup = name }
}

// WithGroup sets the kafka consumer group ID.
func WithGroup(name string) SubscribeOption {
	return func(o *subscribeOptions) { o.group = name }
}

// WithSubscription sets the pubsub subscription ID.
func WithSubscription(name string) SubscribeOption {
	return func(o *subscribeOptions) { o.subscription = name }
}

// WithAutoAck acknowledges messages before the handler runs.
func WithAutoAck(auto bool) SubscribeOption {
	return func(o *subscribeOptions) { o.autoAck = auto }
}

// WithConcurrency sets how many handler goroutines run per subscription.
func WithConcurrency(n int) SubscribeOption {
	return func(o *subscribeOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithMaxInFlight bounds unacknowledged messages per subscription.
func WithMaxInFlight(n int) SubscribeOption {
	return func(o *subscribeOptions) {
		if n > 0 {
			o.maxInFlight = n
		}
	}
}
