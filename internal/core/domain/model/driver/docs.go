// Package driver implements the Driver aggregate.
//
// A driver is eligible for a new assignment only while available. Reserve and Release
// keep the availability flag and the active parcel in step: a driver is unavailable
// exactly when it holds one in-flight parcel. Admin profile edits never change availability.
package driver
