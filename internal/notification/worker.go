package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"local-market-backend/internal/model"
	"local-market-backend/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Message is the JSON payload the app's service worker displays.
type Message struct {
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	BookingID string              `json:"bookingId"`
	Status    model.BookingStatus `json:"status"`
}

// WorkerPool pushes booking status changes to subscribed devices.
type WorkerPool struct {
	size     int
	jobs     chan model.Booking
	subs     *store.SubscriptionStore
	settings *store.SettingsStore
	webpush  *webpush.Options
	sender   NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, subs *store.SubscriptionStore, settings *store.SettingsStore, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:     size,
		jobs:     make(chan model.Booking, size*8),
		subs:     subs,
		settings: settings,
		webpush:  webpushOptions,
		sender:   &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case b := <-wp.jobs:
			wp.sendNotificationsForBooking(ctx, b)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// BookingChanged implements store.BookingObserver. It never blocks the caller: when the
// queue is full the notification is dropped.
func (wp *WorkerPool) BookingChanged(b model.Booking) {
	select {
	case wp.jobs <- b:
	default:
		log.Printf("notification queue full, dropping update for booking %s", b.ID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.Booking {
	return wp.jobs
}

func (wp *WorkerPool) sendNotificationsForBooking(ctx context.Context, b model.Booking) {
	if !wp.settings.NotificationsEnabled() {
		return
	}
	subscriptions := wp.subs.ForBooking(b.ID)
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(messageFor(b))
	if err != nil {
		log.Printf("Error encoding notification for booking %s: %v", b.ID, err)
		return
	}

	log.Printf("Sending %d notifications for booking %s (%s)", len(subscriptions), b.ID, b.Status)
	for _, sub := range subscriptions {
		if ctx.Err() != nil {
			return
		}
		wp.sendNotification(sub, payload)
	}
}

func messageFor(b model.Booking) Message {
	who := b.FixerName
	if who == "" {
		who = "your fixer"
	}
	msg := Message{BookingID: b.ID, Status: b.Status}
	switch b.Status {
	case model.BookingConfirmed:
		msg.Title = "Booking confirmed"
		msg.Body = fmt.Sprintf("%s with %s on %s at %s is confirmed.", b.Service, who, b.Date, b.Time)
	case model.BookingCompleted:
		msg.Title = "Booking completed"
		msg.Body = fmt.Sprintf("How did %s do? Leave a review for %s.", who, b.Service)
	case model.BookingCancelled:
		msg.Title = "Booking cancelled"
		msg.Body = fmt.Sprintf("%s on %s has been cancelled.", b.Service, b.Date)
	default:
		msg.Title = "Booking updated"
		msg.Body = fmt.Sprintf("%s is now %s.", b.Service, b.Status)
	}
	return msg
}

func (wp *WorkerPool) sendNotification(sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		wp.subs.Remove(sub.Endpoint)
	}
}
