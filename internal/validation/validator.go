package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/travel-order-service/internal/domain"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

// Lookup resolves the store-backed constraints.
type Lookup interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Validator evaluates a rule set against raw request input.
type Validator struct {
	lookup       Lookup
	tags         *validator.Validate
	reservedName string
}

// New builds a validator backed by lookup.
func New(lookup Lookup) *Validator {
	return &Validator{lookup: lookup, tags: validator.New()}
}

// WithReservedName makes name unavailable to ReservedName fields. Only the
// account that already holds it may keep it.
func (v *Validator) WithReservedName(name string) *Validator {
	v.reservedName = strings.TrimSpace(name)
	return v
}

type options struct {
	ignoreID int64
}

// Option customizes a single validation run.
type Option func(*options)

// IgnoringUser excludes the user being updated from the uniqueness check.
func IgnoringUser(id int64) Option {
	return func(o *options) { o.ignoreID = id }
}

// Validate checks input against the rule set of op. Every violating field is
// reported with the message of its first failing constraint.
func (v *Validator) Validate(ctx context.Context, op Operation, input map[string]any, opts ...Option) (Fields, error) {
	rules, ok := RulesFor(op)
	if !ok {
		return nil, fmt.Errorf("validation: unknown operation %q", op)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	fields := Fields{}
	violations := map[string][]string{}

	for _, rule := range rules {
		raw, present := input[rule.Field]
		if isEmpty(raw) {
			switch {
			case rule.Presence == Required, rule.Presence == Sometimes && present:
				violations[rule.Field] = []string{fmt.Sprintf("The %s field is required.", attribute(rule.Field))}
			}
			continue
		}

		value, msg := v.coerce(rule, raw)
		if msg != "" {
			violations[rule.Field] = []string{msg}
			continue
		}
		fields[rule.Field] = value
	}

	for _, rule := range rules {
		if rule.AfterOrEqual == "" || !fields.Has(rule.Field) || !fields.Has(rule.AfterOrEqual) {
			continue
		}
		if fields.Date(rule.Field).Before(fields.Date(rule.AfterOrEqual)) {
			violations[rule.Field] = []string{fmt.Sprintf("The %s field must be a date after or equal to %s.",
				attribute(rule.Field), attribute(rule.AfterOrEqual))}
			delete(fields, rule.Field)
		}
	}

	for _, rule := range rules {
		if !fields.Has(rule.Field) {
			continue
		}
		msg, err := v.checkLookups(ctx, rule, fields, o)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			violations[rule.Field] = []string{msg}
		}
	}

	if len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations)
	}
	return fields, nil
}

func (v *Validator) coerce(rule FieldRule, raw any) (any, string) {
	name := attribute(rule.Field)
	switch rule.Kind {
	case KindInteger:
		n, ok := toInt64(raw)
		if !ok {
			return nil, fmt.Sprintf("The %s field must be an integer.", name)
		}
		return n, ""
	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Sprintf("The %s field must be a valid date.", name)
		}
		d, ok := parseDate(strings.TrimSpace(s))
		if !ok {
			return nil, fmt.Sprintf("The %s field must be a valid date.", name)
		}
		return d, ""
	case KindEmail:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Sprintf("The %s field must be a string.", name)
		}
		s = strings.TrimSpace(s)
		tag := "email"
		if rule.Tag != "" {
			tag += "," + rule.Tag
		}
		if msg := v.checkTag(name, s, tag); msg != "" {
			return nil, msg
		}
		return s, ""
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Sprintf("The %s field must be a string.", name)
		}
		if !rule.Raw {
			s = strings.TrimSpace(s)
		}
		if rule.Tag != "" {
			if msg := v.checkTag(name, s, rule.Tag); msg != "" {
				return nil, msg
			}
		}
		return s, ""
	}
}

func (v *Validator) checkTag(name, value, tag string) string {
	err := v.tags.Var(value, tag)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Sprintf("The %s field is invalid.", name)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

func (v *Validator) checkLookups(ctx context.Context, rule FieldRule, fields Fields, o options) (string, error) {
	if rule.ReservedName {
		msg, err := v.checkReservedName(ctx, rule, fields, o)
		if err != nil || msg != "" {
			return msg, err
		}
	}
	if v.lookup == nil {
		return "", nil
	}
	if rule.ExistingUser {
		exists, err := v.lookup.Exists(ctx, fields.Int64(rule.Field))
		if err != nil {
			return "", fmt.Errorf("validate %s: %w", rule.Field, err)
		}
		if !exists {
			return fmt.Sprintf("The selected %s is invalid.", attribute(rule.Field)), nil
		}
	}
	if rule.UniqueEmail {
		taken, err := v.lookup.EmailTaken(ctx, fields.String(rule.Field), o.ignoreID)
		if err != nil {
			return "", fmt.Errorf("validate %s: %w", rule.Field, err)
		}
		if taken {
			return fmt.Sprintf("The %s has already been taken.", attribute(rule.Field)), nil
		}
	}
	return "", nil
}

func (v *Validator) checkReservedName(ctx context.Context, rule FieldRule, fields Fields, o options) (string, error) {
	if v.reservedName == "" || !strings.EqualFold(fields.String(rule.Field), v.reservedName) {
		return "", nil
	}
	taken := fmt.Sprintf("The %s has already been taken.", attribute(rule.Field))
	if o.ignoreID == 0 || v.lookup == nil {
		return taken, nil
	}
	user, err := v.lookup.GetByID(ctx, o.ignoreID)
	if errors.Is(err, pgx.ErrNoRows) {
		return taken, nil
	}
	if err != nil {
		return "", fmt.Errorf("validate %s: %w", rule.Field, err)
	}
	if user.Name == v.reservedName {
		return "", nil
	}
	return taken, nil
}

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func isEmpty(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toInt64(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{domain.DateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), true
		}
	}
	return time.Time{}, false
}
