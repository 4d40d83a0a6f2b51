// Package notification defines the notification contract emitted for lifecycle events
// and the mapping from parcel status changes to the messages each party receives.
package notification
