package events

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"eventplanner-backend/internal/domain"
	"eventplanner-backend/internal/pkg/dates"

	"github.com/emersion/go-ical"
)

const productID = "-//eventplanner//events//EN"

var partStat = map[string]string{
	domain.StatusInvited:   "NEEDS-ACTION",
	domain.StatusConfirmed: "ACCEPTED",
	domain.StatusDeclined:  "DECLINED",
}

// ICS renders the event as an iCalendar document with one VEVENT.
func (s *Service) ICS(ctx context.Context, id string) ([]byte, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return EncodeICS(e, time.Now().UTC())
}

// EncodeICS encodes e. Events without a date cannot be exported.
func EncodeICS(e *domain.Event, stamp time.Time) ([]byte, error) {
	if e.Date == "" {
		return nil, fmt.Errorf("%w: event has no date", domain.ErrValidation)
	}
	start, err := dates.Parse(e.Date)
	if err != nil {
		return nil, err
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.ID)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, start)
	if e.Title != "" {
		ve.Props.SetText(ical.PropSummary, e.Title)
	}
	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ve.Props.SetText(ical.PropLocation, e.Location)
	}
	for _, inv := range e.Invitees {
		p := ical.NewProp(ical.PropAttendee)
		p.Value = "mailto:" + inv.Email
		stat, ok := partStat[inv.Status]
		if !ok {
			stat = "NEEDS-ACTION"
		}
		p.Params.Set(ical.ParamParticipationStatus, stat)
		ve.Props.Add(p)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Children = append(cal.Children, ve)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode ics: %w", err)
	}
	return buf.Bytes(), nil
}
