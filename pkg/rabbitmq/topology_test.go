package rabbitmq

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type declaredQueue struct {
	durable bool
	args    amqp.Table
}

type fakeDeclarer struct {
	exchanges map[string]string
	queues    map[string]declaredQueue
	bindings  []string
	failOn    string
}

func newFakeDeclarer() *fakeDeclarer {
	return &fakeDeclarer{exchanges: map[string]string{}, queues: map[string]declaredQueue{}}
}

func (f *fakeDeclarer) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if f.failOn == name {
		return errors.New("channel closed")
	}
	f.exchanges[name] = kind
	return nil
}

func (f *fakeDeclarer) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.failOn == name {
		return amqp.Queue{}, errors.New("precondition failed")
	}
	f.queues[name] = declaredQueue{durable: durable, args: args}
	return amqp.Queue{Name: name}, nil
}

func (f *fakeDeclarer) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	f.bindings = append(f.bindings, exchange+"/"+key+"->"+name)
	return nil
}

func TestDeclareTopology(t *testing.T) {
	d := newFakeDeclarer()

	assert.NoError(t, DeclareTopology(d))

	assert.Equal(t, "topic", d.exchanges["booking.exchange"])
	assert.Equal(t, "topic", d.exchanges["booking.dlx"])
	assert.True(t, d.queues["booking.queue"].durable)
	assert.Equal(t, "booking.dlx", d.queues["booking.queue"].args["x-dead-letter-exchange"])
	assert.True(t, d.queues["booking.queue.dlq"].durable)
	assert.Contains(t, d.bindings, "booking.exchange/booking.created->booking.queue")
	assert.Contains(t, d.bindings, "booking.dlx/#->booking.queue.dlq")
}

func TestDeclareTopology_Idempotent(t *testing.T) {
	d := newFakeDeclarer()

	assert.NoError(t, DeclareTopology(d))
	assert.NoError(t, DeclareTopology(d))
	assert.Len(t, d.queues, 2)
}

func TestDeclareTopology_QueueFailure(t *testing.T) {
	d := newFakeDeclarer()
	d.failOn = QueueName

	err := DeclareTopology(d)

	assert.ErrorContains(t, err, "rabbitmq queue declare")
}
