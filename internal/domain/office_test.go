package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInactivity_ExactlyOneField(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	monday := time.Monday

	in, err := NewInactivity(1, &date, nil)
	assert.NoError(t, err)
	assert.Equal(t, &date, in.SpecificDate)

	in, err = NewInactivity(1, nil, &monday)
	assert.NoError(t, err)
	assert.Equal(t, &monday, in.Weekday)

	_, err = NewInactivity(1, &date, &monday)
	assert.ErrorIs(t, err, ErrInvalidInactivity)

	_, err = NewInactivity(1, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInactivity)
}

func TestInactivity_BlocksDate(t *testing.T) {
	monday := time.Monday
	weekly := Inactivity{OfficeID: 1, Weekday: &monday}

	aMonday := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	aTuesday := aMonday.Add(24 * time.Hour)
	assert.True(t, weekly.BlocksDate(aMonday))
	assert.False(t, weekly.BlocksDate(aTuesday))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	single := Inactivity{OfficeID: 1, SpecificDate: &date}
	assert.True(t, single.BlocksDate(date.Add(15*time.Hour)))
	assert.False(t, single.BlocksDate(date.Add(24*time.Hour)))
}

func TestOffice_IsDeletedAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&Office{}).IsDeletedAt(now))
	assert.True(t, (&Office{DeletedAt: &past}).IsDeletedAt(now))
	assert.False(t, (&Office{DeletedAt: &future}).IsDeletedAt(now))
	// effective date itself counts as deleted
	assert.True(t, (&Office{DeletedAt: &now}).IsDeletedAt(now))
}

func TestMembershipAcquisition_ActiveOn(t *testing.T) {
	acq := &MembershipAcquisition{
		Status:     AcquisitionBought,
		AccessDays: []time.Weekday{time.Monday, time.Wednesday},
	}
	assert.True(t, acq.ActiveOn(time.Monday))
	assert.False(t, acq.ActiveOn(time.Tuesday))

	acq.Status = AcquisitionPending
	assert.False(t, acq.ActiveOn(time.Monday))
}
