package notification

import (
	"fmt"
	"strconv"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
)

var driverProgressMessages = map[parcel.Status]string{
	parcel.PickedUp:       "Your parcel has been picked up by the driver",
	parcel.InTransit:      "Your parcel is in transit",
	parcel.OutForDelivery: "Your parcel is out for delivery",
	parcel.Delivered:      "Your parcel has been delivered successfully",
}

// ForStatusChange builds the notifications owed for one committed status change.
// Recipients follow the transition effects; events without notify effects yield none.
func ForStatusChange(e parcel.StatusChanged) ([]Notification, error) {
	tn := e.TrackingNumber
	var drafts []draft

	if e.Effects.Has(parcel.EffectNotifyClient) {
		drafts = append(drafts, clientDraft(e))
	}
	if e.Effects.Has(parcel.EffectNotifyDriver) && e.DriverID != nil {
		drafts = append(drafts, driverDraft(e))
	}

	out := make([]Notification, 0, len(drafts))
	for _, d := range drafts {
		n, err := New(kernel.NewUUID(), d.recipient, d.kind, d.title, d.message, &tn, e.At)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

type draft struct {
	recipient Recipient
	kind      Kind
	title     string
	message   string
}

func clientDraft(e parcel.StatusChanged) draft {
	d := draft{recipient: ClientRecipient(e.ClientID), kind: KindInfo}
	tn := e.TrackingNumber.String()

	switch {
	case e.IsCreation():
		d.kind = KindSuccess
		d.title = "Parcel Created Successfully"
		d.message = fmt.Sprintf("Your parcel with tracking number %s has been created. Total price: %s",
			tn, e.Price.StringFixed(2))
	case e.To == parcel.Accepted && e.Event == parcel.EventAccept:
		d.title = "Parcel Accepted"
		d.message = fmt.Sprintf("Your parcel %s has been accepted and is awaiting driver assignment", tn)
	case e.To == parcel.Rejected:
		d.kind = KindWarning
		d.title = "Parcel Rejected"
		d.message = fmt.Sprintf("Your parcel %s has been rejected", tn)
		if e.Notes != "" {
			d.message += ": " + e.Notes
		}
	case e.To == parcel.Assigned:
		d.title = "Driver Assigned"
		d.message = fmt.Sprintf("A driver has been assigned to your parcel %s", tn)
	case e.Event == parcel.EventUnassign:
		d.kind = KindWarning
		d.title = "Driver Unassigned"
		d.message = fmt.Sprintf("The driver assignment for your parcel %s was revoked; a new driver will be assigned", tn)
	default:
		d.title = "Parcel Status Update"
		d.message = fmt.Sprintf("%s. Tracking: %s", driverProgressMessages[e.To], tn)
		if e.To == parcel.Delivered {
			d.kind = KindSuccess
		}
	}
	return d
}

func driverDraft(e parcel.StatusChanged) draft {
	d := draft{recipient: DriverRecipient(*e.DriverID), kind: KindInfo}
	tn := e.TrackingNumber.String()

	if e.Event == parcel.EventUnassign {
		d.kind = KindWarning
		d.title = "Assignment Revoked"
		d.message = fmt.Sprintf("You have been unassigned from parcel %s", tn)
		if e.Notes != "" {
			d.message += ": " + e.Notes
		}
		return d
	}

	d.title = "New Assignment"
	d.message = fmt.Sprintf("Parcel %s has been assigned to you. Pickup: %s. Drop: %s", tn, e.PickupAddress, e.DropAddress)
	return d
}

func formatDriverID(id int64) string {
	return strconv.FormatInt(id, 10)
}
