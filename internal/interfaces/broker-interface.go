package interfaces

// ProducerHandler publishes lifecycle events to the broker. The service
// treats publishing as best-effort: a broker failure never fails a mutation.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
