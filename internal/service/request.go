package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/rosterserver/internal/domain"
	"github.com/goserg/rosterserver/internal/normalize"
)

const (
	FieldName       = "name"
	FieldTeam       = "team"
	FieldPosition   = "position"
	FieldBattingAvg = "batting_avg"
	FieldBio        = "bio"
)

// requiredOnCreate lists, in report order, the fields a create payload must
// carry. bio falls back to an empty string.
var requiredOnCreate = []string{FieldName, FieldTeam, FieldPosition, FieldBattingAvg}

// Payload is a request body split into its top level fields. It remembers
// which fields were sent, so absent and empty can be told apart.
type Payload map[string]json.RawMessage

// ParsePayload decodes body. Anything that is not a JSON object is treated as
// an empty payload.
func ParsePayload(body []byte) Payload {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil || p == nil {
		return Payload{}
	}
	return p
}

func (p Payload) Fields() mapset.Set[string] {
	fields := mapset.NewThreadUnsafeSet[string]()
	for k := range p {
		fields.Add(k)
	}
	return fields
}

func (p Payload) has(field string) bool {
	_, ok := p[field]
	return ok
}

// text decodes and trims a string field. A JSON null reads as an empty string.
func (p Payload) text(field string) (string, error) {
	raw := bytes.TrimSpace(p[field])
	if bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", domain.NewValidationError(domain.InvalidField, field)
	}
	return normalize.Text(s), nil
}

// number decodes a JSON number or a numeric string into a finite float.
func (p Payload) number(field string) (float64, error) {
	raw := bytes.TrimSpace(p[field])
	invalid := domain.NewValidationError(domain.InvalidNumber, field)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, invalid
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, invalid
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, invalid
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid
	}
	return f, nil
}

type CreatePlayerRequest struct {
	Name       string
	Team       string
	Position   string
	BattingAvg float64
	Bio        string
}

// NewCreatePlayerRequest checks, in order, that every required field is
// present, that batting_avg is a number and that the text fields are usable.
func NewCreatePlayerRequest(p Payload) (CreatePlayerRequest, error) {
	sent := p.Fields()
	var missing []string
	for _, field := range requiredOnCreate {
		if !sent.Contains(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return CreatePlayerRequest{}, domain.NewValidationError(domain.MissingFields, missing...)
	}

	avg, err := p.number(FieldBattingAvg)
	if err != nil {
		return CreatePlayerRequest{}, err
	}
	req := CreatePlayerRequest{BattingAvg: avg}
	var invalid []string
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{FieldName, &req.Name},
		{FieldTeam, &req.Team},
		{FieldPosition, &req.Position},
		{FieldBio, &req.Bio},
	} {
		if !sent.Contains(f.name) {
			continue
		}
		v, err := p.text(f.name)
		if err != nil {
			invalid = append(invalid, f.name)
			continue
		}
		*f.dst = v
	}
	if len(invalid) > 0 {
		return CreatePlayerRequest{}, domain.NewValidationError(domain.InvalidField, invalid...)
	}
	if err := req.Validate(); err != nil {
		return CreatePlayerRequest{}, err
	}
	return req, nil
}

// Validate reports fields that would break the player invariants. It trims
// text fields in place first.
func (r *CreatePlayerRequest) Validate() error {
	r.Name = normalize.Text(r.Name)
	r.Team = normalize.Text(r.Team)
	r.Position = normalize.Text(r.Position)
	r.Bio = normalize.Text(r.Bio)

	var empty []string
	if r.Name == "" {
		empty = append(empty, FieldName)
	}
	if r.Team == "" {
		empty = append(empty, FieldTeam)
	}
	if r.Position == "" {
		empty = append(empty, FieldPosition)
	}
	if len(empty) > 0 {
		return domain.NewValidationError(domain.InvalidField, empty...)
	}
	if math.IsNaN(r.BattingAvg) || math.IsInf(r.BattingAvg, 0) {
		return domain.NewValidationError(domain.InvalidNumber, FieldBattingAvg)
	}
	return nil
}

func (r CreatePlayerRequest) player() domain.Player {
	return domain.Player{
		Name:       r.Name,
		Team:       r.Team,
		Position:   r.Position,
		BattingAvg: r.BattingAvg,
		Bio:        r.Bio,
	}
}

// UpdatePlayerRequest holds the fields of a partial update. Nil fields are
// left untouched.
//
// Fields are applied in the order name, team, position, batting_avg, bio.
// When one of them is invalid, Rejected carries its error and every field
// after it stays nil.
type UpdatePlayerRequest struct {
	Name       *string
	Team       *string
	Position   *string
	BattingAvg *float64
	Bio        *string

	Rejected error
}

func NewUpdatePlayerRequest(p Payload) UpdatePlayerRequest {
	var req UpdatePlayerRequest
	for _, field := range []string{FieldName, FieldTeam, FieldPosition, FieldBattingAvg, FieldBio} {
		if !p.has(field) {
			continue
		}
		if field == FieldBattingAvg {
			avg, err := p.number(field)
			if err != nil {
				req.Rejected = err
				return req
			}
			req.BattingAvg = &avg
			continue
		}
		v, err := p.text(field)
		if err == nil && v == "" && field != FieldBio {
			err = domain.NewValidationError(domain.InvalidField, field)
		}
		if err != nil {
			req.Rejected = err
			return req
		}
		switch field {
		case FieldName:
			req.Name = &v
		case FieldTeam:
			req.Team = &v
		case FieldPosition:
			req.Position = &v
		case FieldBio:
			req.Bio = &v
		}
	}
	return req
}

func (r UpdatePlayerRequest) apply(p *domain.Player) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Team != nil {
		p.Team = *r.Team
	}
	if r.Position != nil {
		p.Position = *r.Position
	}
	if r.BattingAvg != nil {
		p.BattingAvg = *r.BattingAvg
	}
	if r.Bio != nil {
		p.Bio = *r.Bio
	}
}
