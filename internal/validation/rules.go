package validation

// Operation identifies the rule set applied to a request.
type Operation string

const (
	OpCreateOrder         Operation = "orders.create"
	OpUpdateOrder         Operation = "orders.update"
	OpFilterOrders        Operation = "orders.filter"
	OpOrdersByUser        Operation = "orders.by_user"
	OpCreateUser          Operation = "users.create"
	OpUpdateUser          Operation = "users.update"
	OpAuthenticate        Operation = "auth.credentials"
	OpCreateNotification  Operation = "notifications.create"
	OpNotificationsByUser Operation = "notifications.by_user"
)

// Presence controls how a missing or empty field is treated.
type Presence int

const (
	// Required fields must be present and non-empty.
	Required Presence = iota
	// Sometimes fields are checked only when present, and must then be non-empty.
	Sometimes
	// Nullable fields may be absent, null or empty.
	Nullable
)

// Kind is the expected type of a field value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindDate
	KindEmail
)

// FieldRule declares the constraints of one input field.
type FieldRule struct {
	Field    string
	Presence Presence
	Kind     Kind
	// Tag holds extra go-playground/validator tags, e.g. "max=255".
	Tag string
	// AfterOrEqual names a date field this one must not precede.
	AfterOrEqual string
	// ExistingUser requires the integer to reference a stored user.
	ExistingUser bool
	// UniqueEmail requires no other user to hold the address.
	UniqueEmail bool
	// ReservedName rejects the administrator's name unless the user being
	// updated already holds it.
	ReservedName bool
	// Raw keeps string values byte for byte instead of trimming them.
	Raw bool
}

var ruleSets = map[Operation][]FieldRule{
	OpCreateOrder: {
		{Field: "customer_name", Presence: Required, Kind: KindString, Tag: "max=255"},
		{Field: "destiny", Presence: Required, Kind: KindString, Tag: "max=255"},
		{Field: "start_date", Presence: Required, Kind: KindDate},
		{Field: "return_date", Presence: Required, Kind: KindDate, AfterOrEqual: "start_date"},
		{Field: "status", Presence: Required, Kind: KindString, Tag: "max=255"},
		{Field: "user_id", Presence: Required, Kind: KindInteger, ExistingUser: true},
	},
	OpUpdateOrder: {
		{Field: "customer_name", Presence: Sometimes, Kind: KindString, Tag: "max=255"},
		{Field: "destiny", Presence: Sometimes, Kind: KindString, Tag: "max=255"},
		{Field: "start_date", Presence: Sometimes, Kind: KindDate},
		{Field: "return_date", Presence: Sometimes, Kind: KindDate},
		{Field: "status", Presence: Sometimes, Kind: KindString, Tag: "max=255"},
		{Field: "user_id", Presence: Sometimes, Kind: KindInteger, ExistingUser: true},
	},
	OpFilterOrders: {
		{Field: "destination", Presence: Nullable, Kind: KindString},
		{Field: "start_date", Presence: Nullable, Kind: KindDate},
		{Field: "end_date", Presence: Nullable, Kind: KindDate, AfterOrEqual: "start_date"},
	},
	OpOrdersByUser: {
		{Field: "user_id", Presence: Required, Kind: KindInteger, ExistingUser: true},
	},
	OpCreateUser: {
		{Field: "name", Presence: Required, Kind: KindString, Tag: "max=255", ReservedName: true},
		{Field: "email", Presence: Required, Kind: KindEmail, Tag: "max=255", UniqueEmail: true},
		{Field: "password", Presence: Required, Kind: KindString, Tag: "min=8", Raw: true},
	},
	OpUpdateUser: {
		{Field: "name", Presence: Sometimes, Kind: KindString, Tag: "max=255", ReservedName: true},
		{Field: "email", Presence: Sometimes, Kind: KindEmail, Tag: "max=255", UniqueEmail: true},
		{Field: "password", Presence: Sometimes, Kind: KindString, Tag: "min=8", Raw: true},
	},
	OpAuthenticate: {
		{Field: "email", Presence: Required, Kind: KindEmail},
		{Field: "password", Presence: Required, Kind: KindString, Raw: true},
	},
	OpCreateNotification: {
		{Field: "user_id", Presence: Required, Kind: KindInteger, ExistingUser: true},
		{Field: "message", Presence: Required, Kind: KindString, Tag: "max=1000"},
	},
	OpNotificationsByUser: {
		{Field: "user_id", Presence: Required, Kind: KindInteger, ExistingUser: true},
	},
}

// RulesFor returns the rule set registered for op.
func RulesFor(op Operation) ([]FieldRule, bool) {
	rules, ok := ruleSets[op]
	return rules, ok
}
