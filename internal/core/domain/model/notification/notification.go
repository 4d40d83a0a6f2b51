package notification

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Kind is the severity shown to the recipient.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindInfo, KindSuccess, KindWarning:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidError("kind")
	}
}

// Recipient addresses a notification. Clients are addressed by user id,
// drivers by driver id.
type Recipient struct {
	Role kernel.Role
	ID   string
}

func ClientRecipient(id kernel.UUID) Recipient {
	return Recipient{Role: kernel.RoleClient, ID: id.String()}
}

func DriverRecipient(driverID int64) Recipient {
	return Recipient{Role: kernel.RoleDriver, ID: formatDriverID(driverID)}
}

// RecipientFor returns the inbox address of an authenticated actor.
func RecipientFor(actor kernel.Actor) Recipient {
	if actor.Role() == kernel.RoleDriver {
		return DriverRecipient(actor.DriverID())
	}
	return Recipient{Role: actor.Role(), ID: actor.UserID().String()}
}

// Notification is one message for one recipient. Its id makes redelivery idempotent.
type Notification struct {
	id        kernel.UUID
	recipient Recipient
	kind      Kind
	title     string
	message   string
	parcelRef *kernel.TrackingNumber
	createdAt time.Time
	read      bool
}

func New(id kernel.UUID, recipient Recipient, kind Kind, title, message string,
	parcelRef *kernel.TrackingNumber, createdAt time.Time,
) (Notification, error) {
	n := Notification{
		id:        id,
		recipient: recipient,
		kind:      kind,
		title:     strings.TrimSpace(title),
		message:   strings.TrimSpace(message),
		createdAt: createdAt,
	}
	if parcelRef != nil {
		tn := *parcelRef
		n.parcelRef = &tn
	}

	var recipientErr, titleErr error
	if recipient.ID == "" {
		recipientErr = errs.NewValueIsRequiredError("recipient")
	}
	if _, err := kernel.ParseRole(recipient.Role.String()); err != nil {
		recipientErr = errors.Join(recipientErr, err)
	}
	if n.title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	_, kindErr := ParseKind(string(kind))

	if err := errors.Join(id.Validate(), recipientErr, kindErr, titleErr); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Restore rebuilds a stored notification, including its read flag.
func Restore(id kernel.UUID, recipient Recipient, kind Kind, title, message string,
	parcelRef *kernel.TrackingNumber, createdAt time.Time, read bool,
) (Notification, error) {
	n, err := New(id, recipient, kind, title, message, parcelRef, createdAt)
	if err != nil {
		return Notification{}, err
	}
	n.read = read
	return n, nil
}

func (n Notification) ID() kernel.UUID { return n.id }

func (n Notification) Recipient() Recipient { return n.recipient }

func (n Notification) Kind() Kind { return n.kind }

func (n Notification) Title() string { return n.title }

func (n Notification) Message() string { return n.message }

func (n Notification) ParcelRef() *kernel.TrackingNumber {
	if n.parcelRef == nil {
		return nil
	}
	tn := *n.parcelRef
	return &tn
}

func (n Notification) CreatedAt() time.Time { return n.createdAt }

func (n Notification) IsRead() bool { return n.read }

// Validate fails for the zero Notification.
func (n Notification) Validate() error {
	return n.id.Validate()
}
