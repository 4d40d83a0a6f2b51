// Package kernel holds the value objects shared by every aggregate of the logistics domain.
//
// The package includes:
//   - UUID: identifier of users, clients and notifications
//   - TrackingNumber: caller-visible parcel identifier ("PMS-" + 8 upper-case hex characters)
//   - Location: a validated WGS84 point with great-circle distance
//   - Role and Actor: the authenticated principal that triggers domain operations
//
// Value objects are immutable. Their zero values are invalid and fail Validate,
// so they must be created through the provided constructors.
package kernel
