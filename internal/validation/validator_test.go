package validation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/travel-order-service/internal/domain"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

type fakeLookup struct {
	users  map[int64]bool
	emails map[string]int64
	names  map[int64]string
	err    error
}

func (f *fakeLookup) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	name, ok := f.names[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.User{ID: id, Name: name}, nil
}

func (f *fakeLookup) Exists(_ context.Context, id int64) (bool, error) {
	return f.users[id], f.err
}

func (f *fakeLookup) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	id, ok := f.emails[email]
	return ok && id != exceptID, f.err
}

func newTestValidator() *Validator {
	return New(&fakeLookup{
		users:  map[int64]bool{1: true, 2: true},
		emails: map[string]int64{"taken@example.com": 2},
		names:  map[int64]string{1: "Admin", 2: "Bo"},
	}).WithReservedName("Admin")
}

func violations(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, http.StatusUnprocessableEntity, de.HTTPStatus)
	return de.Details
}

func TestValidate_CreateOrder(t *testing.T) {
	v := newTestValidator()

	fields, err := v.Validate(context.Background(), OpCreateOrder, map[string]any{
		"customer_name": "  John Doe ",
		"destiny":       "Paris",
		"start_date":    "2026-06-01",
		"return_date":   "2026-06-15",
		"status":        "Pending",
		"user_id":       float64(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "John Doe", fields.String("customer_name"))
	assert.Equal(t, int64(1), fields.Int64("user_id"))
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), fields.Date("start_date"))
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), fields.Date("return_date"))
}

func TestValidate_CreateOrderReportsEveryMissingField(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpCreateOrder, map[string]any{
		"destiny": "Paris",
	})
	details := violations(t, err)

	assert.Len(t, details, 5)
	for _, field := range []string{"customer_name", "start_date", "return_date", "status", "user_id"} {
		require.Contains(t, details, field)
		assert.Len(t, details[field], 1)
	}
	assert.Equal(t, []string{"The customer name field is required."}, details["customer_name"])
}

func TestValidate_CreateOrderInvalidValues(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpCreateOrder, map[string]any{
		"customer_name": strings.Repeat("a", 256),
		"destiny":       42.0,
		"start_date":    "not a date",
		"return_date":   "2026-06-15",
		"status":        "Pending",
		"user_id":       99.0,
	})
	details := violations(t, err)

	assert.Equal(t, []string{"The customer name field must not be greater than 255 characters."}, details["customer_name"])
	assert.Equal(t, []string{"The destiny field must be a string."}, details["destiny"])
	assert.Equal(t, []string{"The start date field must be a valid date."}, details["start_date"])
	assert.Equal(t, []string{"The selected user id is invalid."}, details["user_id"])
	assert.NotContains(t, details, "return_date")
}

func TestValidate_ReturnDateBeforeStartDate(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpCreateOrder, map[string]any{
		"customer_name": "John",
		"destiny":       "Paris",
		"start_date":    "2026-06-15",
		"return_date":   "2026-06-01",
		"status":        "Pending",
		"user_id":       1.0,
	})
	details := violations(t, err)

	assert.Equal(t, []string{"The return date field must be a date after or equal to start date."}, details["return_date"])
}

func TestValidate_ReturnDateEqualStartDate(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpCreateOrder, map[string]any{
		"customer_name": "John",
		"destiny":       "Paris",
		"start_date":    "2026-06-15",
		"return_date":   "2026-06-15",
		"status":        "Pending",
		"user_id":       "2",
	})
	assert.NoError(t, err)
}

func TestValidate_UpdateOrderOnlyPresentFields(t *testing.T) {
	v := newTestValidator()

	fields, err := v.Validate(context.Background(), OpUpdateOrder, map[string]any{
		"status": "Cancelled",
	})
	require.NoError(t, err)
	assert.Equal(t, Fields{"status": "Cancelled"}, fields)
	assert.Nil(t, fields.StringPtr("destiny"))

	_, err = v.Validate(context.Background(), OpUpdateOrder, map[string]any{
		"status":      nil,
		"start_date":  "2026-09-10",
		"return_date": "2026-09-01",
	})
	details := violations(t, err)
	assert.Equal(t, []string{"The status field is required."}, details["status"])
	assert.NotContains(t, details, "return_date")
}

func TestValidate_FilterOrders(t *testing.T) {
	v := newTestValidator()

	fields, err := v.Validate(context.Background(), OpFilterOrders, map[string]any{
		"destination": "",
		"start_date":  nil,
	})
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = v.Validate(context.Background(), OpFilterOrders, map[string]any{
		"start_date": "2026-02-01",
		"end_date":   "2026-01-01",
	})
	details := violations(t, err)
	assert.Contains(t, details, "end_date")
}

func TestValidate_UserUniqueness(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpCreateUser, map[string]any{
		"name":     "Maria",
		"email":    "taken@example.com",
		"password": "short",
	})
	details := violations(t, err)
	assert.Equal(t, []string{"The email has already been taken."}, details["email"])
	assert.Equal(t, []string{"The password field must be at least 8 characters."}, details["password"])

	fields, err := v.Validate(context.Background(), OpUpdateUser, map[string]any{
		"email": "taken@example.com",
	}, IgnoringUser(2))
	require.NoError(t, err)
	assert.Equal(t, "taken@example.com", fields.String("email"))
}

func TestValidate_Authenticate(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpAuthenticate, map[string]any{
		"email": "not-an-email",
	})
	details := violations(t, err)
	assert.Equal(t, []string{"The email field must be a valid email address."}, details["email"])
	assert.Equal(t, []string{"The password field is required."}, details["password"])
}

func TestValidate_NotificationRules(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), OpCreateNotification, map[string]any{
		"user_id": 1.5,
		"message": strings.Repeat("m", 1001),
	})
	details := violations(t, err)
	assert.Equal(t, []string{"The user id field must be an integer."}, details["user_id"])
	assert.Equal(t, []string{"The message field must not be greater than 1000 characters."}, details["message"])

	fields, err := v.Validate(context.Background(), OpNotificationsByUser, map[string]any{"user_id": 2.0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), fields.Int64("user_id"))
}

func TestValidate_LookupFailure(t *testing.T) {
	v := New(&fakeLookup{err: errors.New("db down")})

	_, err := v.Validate(context.Background(), OpOrdersByUser, map[string]any{"user_id": 1.0})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.ToDomainError(err).HTTPStatus)
}

func TestValidate_UnknownOperation(t *testing.T) {
	_, err := newTestValidator().Validate(context.Background(), Operation("nope"), nil)
	assert.Error(t, err)
}

func TestValidate_ReservedName(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	for _, name := range []string{"Admin", "  admin "} {
		_, err := v.Validate(ctx, OpCreateUser, map[string]any{
			"name":     name,
			"email":    "new@example.com",
			"password": "password123",
		})
		details := violations(t, err)
		assert.Equal(t, []string{"The name has already been taken."}, details["name"], name)
	}

	_, err := v.Validate(ctx, OpUpdateUser, map[string]any{"name": "Admin"}, IgnoringUser(2))
	details := violations(t, err)
	assert.Equal(t, []string{"The name has already been taken."}, details["name"])

	_, err = v.Validate(ctx, OpUpdateUser, map[string]any{"name": "Admin"}, IgnoringUser(99))
	violations(t, err)

	fields, err := v.Validate(ctx, OpUpdateUser, map[string]any{"name": "Admin"}, IgnoringUser(1))
	require.NoError(t, err)
	assert.Equal(t, "Admin", fields.String("name"))

	fields, err = New(&fakeLookup{}).Validate(ctx, OpUpdateUser, map[string]any{"name": "Admin"})
	require.NoError(t, err, "no reserved name configured")
	assert.Equal(t, "Admin", fields.String("name"))
}

func TestValidate_PasswordsKeepWhitespace(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	fields, err := v.Validate(ctx, OpCreateUser, map[string]any{
		"name":     "  Cy ",
		"email":    " cy@example.com ",
		"password": "  password123  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cy", fields.String("name"))
	assert.Equal(t, "cy@example.com", fields.String("email"))
	assert.Equal(t, "  password123  ", fields.String("password"))

	fields, err = v.Validate(ctx, OpAuthenticate, map[string]any{
		"email":    "cy@example.com",
		"password": " secret ",
	})
	require.NoError(t, err)
	assert.Equal(t, " secret ", fields.String("password"))

	_, err = v.Validate(ctx, OpUpdateUser, map[string]any{"password": "  short  "})
	require.NoError(t, err, "length counts the untrimmed value")

	_, err = v.Validate(ctx, OpCreateUser, map[string]any{
		"name":     "Cy",
		"email":    "cy@example.com",
		"password": "        ",
	})
	details := violations(t, err)
	assert.Equal(t, []string{"The password field is required."}, details["password"])
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"float", 42.0, 42, true},
		{"fraction", 1.5, 0, false},
		{"float at int64 overflow", 9.223372036854775808e18, 0, false},
		{"json number beyond float precision", json.Number("9007199254740993"), 9007199254740993, true},
		{"json number integral float", json.Number("2.0"), 2, true},
		{"json number overflow", json.Number("9223372036854775808"), 0, false},
		{"json number fraction", json.Number("2.5"), 0, false},
		{"string", " 7 ", 7, true},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
