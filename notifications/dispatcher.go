package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jpillora/backoff"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// maxDeliveryAttempts is the maximum number of times a single delivery
// is attempted before it is marked failed.
const maxDeliveryAttempts = 3

// Dispatcher fans notifications out to the configured surfaces from a
// bounded queue of background workers. Every dispatch is recorded as a
// Delivery row so failed user notifications can be audited afterwards.
type Dispatcher struct {
	wg            *sync.WaitGroup
	deliveryChan  chan *Delivery
	context       context.Context
	cancelContext context.CancelFunc

	store       Store
	notifiers   []Notifier
	capacity    uint
	workerCount uint
	ratelimiter ratelimit.Limiter

	mu      sync.Mutex
	started bool
	closed  bool
}

type DispatcherStatus struct {
	QueueLength int `json:"queueLength"`
	Capacity    int `json:"queueCapacity"`
	WorkerCount int `json:"workerCount"`
}

func NewDispatcher(store Store, capacity uint, workerCount uint, opts ...DispatcherOption) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		wg:            &sync.WaitGroup{},
		deliveryChan:  make(chan *Delivery, capacity),
		context:       ctx,
		cancelContext: cancel,

		store:       store,
		capacity:    capacity,
		workerCount: workerCount,
		ratelimiter: ratelimit.NewUnlimited(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if len(d.notifiers) == 0 {
		d.notifiers = append(d.notifiers, NewLogNotifier())
	}

	return d
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	d.startWorkers()
}

// Stop drains the queue and waits for workers to finish their current
// delivery. Dispatches arriving after Stop are rejected instead of
// panicking on the closed queue; a request handler can still be running
// when the server shuts down.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.deliveryChan)
	d.wg.Wait()
	d.cancelContext()
}

func (d *Dispatcher) Status() (DispatcherStatus, error) {
	return DispatcherStatus{
		QueueLength: len(d.deliveryChan),
		Capacity:    int(d.capacity),
		WorkerCount: int(d.workerCount),
	}, nil
}

// Notify queues a notification for delivery. It implements Notifier so
// a Dispatcher can stand wherever a single surface is expected. The
// only dispatch-time error is a full queue; delivery errors end up on
// the Delivery row instead.
func (d *Dispatcher) Notify(ctx context.Context, n Notification) error {
	_, err := d.Dispatch(ctx, n)
	return err
}

func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) (*Delivery, error) {
	delivery, err := newDelivery(n)
	if err != nil {
		return nil, err
	}

	if err := d.store.InsertDelivery(delivery); err != nil {
		return nil, err
	}

	if err := d.enqueue(delivery); err != nil {
		delivery.State = QueueFull
		delivery.Error = err.Error()
		if err := d.store.UpdateDelivery(delivery); err != nil {
			log.WithFields(log.Fields{"deliveryId": delivery.ID, "error": err}).
				Warn("Could not update delivery state")
		}
		return nil, err
	}

	return delivery, nil
}

func (d *Dispatcher) enqueue(delivery *Delivery) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("notification dispatcher is stopped")
	}

	select {
	case d.deliveryChan <- delivery:
		return nil
	default:
		return fmt.Errorf("notification queue is full")
	}
}

func (d *Dispatcher) startWorkers() {
	for i := uint(0); i < d.workerCount; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for delivery := range d.deliveryChan {
				d.ratelimiter.Take()
				d.process(delivery)
			}
		}()
	}
}

func (d *Dispatcher) process(delivery *Delivery) {
	n, err := delivery.Notification()
	if err != nil {
		delivery.State = Failed
		delivery.Error = err.Error()
		d.update(delivery)
		return
	}

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
	}

	for {
		delivery.ExecCount++
		err := d.send(n)
		if err == nil {
			delivery.State = Complete
			d.update(delivery)
			return
		}

		delivery.Errors = append(delivery.Errors, err.Error())
		delivery.Error = err.Error()

		if delivery.ExecCount >= maxDeliveryAttempts {
			delivery.State = Failed
			d.update(delivery)
			log.
				WithFields(log.Fields{"deliveryId": delivery.ID, "error": err}).
				Warn("Giving up on notification delivery")
			return
		}

		select {
		case <-d.context.Done():
			delivery.State = Failed
			d.update(delivery)
			return
		case <-time.After(b.Duration()):
		}
	}
}

func (d *Dispatcher) send(n Notification) error {
	errs := []string{}
	for _, notifier := range d.notifiers {
		if err := notifier.Notify(d.context, n); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notification delivery failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (d *Dispatcher) update(delivery *Delivery) {
	if err := d.store.UpdateDelivery(delivery); err != nil {
		log.
			WithFields(log.Fields{"deliveryId": delivery.ID, "error": err}).
			Warn("Could not update delivery state")
	}
}
