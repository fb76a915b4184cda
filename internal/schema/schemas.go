package schema

// Schema names accepted by Validate.
const (
	Register         = "register"
	Login            = "login"
	CreateEvent      = "createEvent"
	ModifyEvent      = "modifyEvent"
	DeleteEvent      = "deleteEvent"
	GetEvents        = "getEvents"
	GetDetailedEvent = "getDetailedEvent"
	RSVP             = "rsvp"
	Invite           = "invite"
)

var zero = 0.0

var creationStatuses = []string{"DRAFT", "PUBLISHED", "ARCHIVED"}
var rsvpStatuses = []string{"ACCEPTED", "DECLINED", "MAYBE"}

// registry holds every named schema. Keep in sync with the constants
// above; Validate panics on names missing here.
var registry = map[string]Schema{
	Register: {Fields: map[string]Field{
		"email":     {Type: TypeString, Required: true, Format: FormatEmail},
		"password":  {Type: TypeString, Required: true, MinLength: 8, MaxLength: 72},
		"firstName": {Type: TypeString, Required: true, MaxLength: 100},
		"lastName":  {Type: TypeString, Required: true, MaxLength: 100},
	}},
	Login: {Fields: map[string]Field{
		"email":    {Type: TypeString, Required: true, Format: FormatEmail},
		"password": {Type: TypeString, Required: true},
	}},
	CreateEvent: {Fields: map[string]Field{
		"title":          {Type: TypeString, Required: true, MaxLength: 200},
		"description":    {Type: TypeString, MaxLength: 5000},
		"location":       {Type: TypeString, MaxLength: 500},
		"startDate":      {Type: TypeString, Required: true, Format: FormatDateTime},
		"endDate":        {Type: TypeString, Format: FormatDateTime},
		"creationStatus": {Type: TypeString, Enum: creationStatuses},
	}},
	ModifyEvent: {Fields: map[string]Field{
		"eventId":        {Type: TypeString, Required: true, Format: FormatUUID},
		"title":          {Type: TypeString, MaxLength: 200},
		"description":    {Type: TypeString, MaxLength: 5000},
		"location":       {Type: TypeString, MaxLength: 500},
		"startDate":      {Type: TypeString, Format: FormatDateTime},
		"endDate":        {Type: TypeString, Format: FormatDateTime},
		"creationStatus": {Type: TypeString, Enum: creationStatuses},
	}},
	DeleteEvent: {Fields: map[string]Field{
		"eventId": {Type: TypeString, Required: true, Format: FormatUUID},
	}},
	GetEvents: {Fields: map[string]Field{
		"limit":  {Type: TypeInteger, Minimum: &zero},
		"offset": {Type: TypeInteger, Minimum: &zero},
	}},
	GetDetailedEvent: {Fields: map[string]Field{
		"eventId":   {Type: TypeString, Required: true, Format: FormatUUID},
		"rsvpToken": {Type: TypeString},
	}},
	RSVP: {Fields: map[string]Field{
		"eventId":   {Type: TypeString, Required: true, Format: FormatUUID},
		"rsvpToken": {Type: TypeString, Required: true},
		"name":      {Type: TypeString, MaxLength: 200},
		"email":     {Type: TypeString, Format: FormatEmail},
		"status":    {Type: TypeString, Required: true, Enum: rsvpStatuses},
	}},
	Invite: {Fields: map[string]Field{
		"eventId": {Type: TypeString, Required: true, Format: FormatUUID},
		"recipients": {Type: TypeArray, Required: true, MinItems: 1, Items: &Schema{Fields: map[string]Field{
			"email": {Type: TypeString, Required: true, Format: FormatEmail},
			"name":  {Type: TypeString, MaxLength: 200},
		}}},
		"customMessage": {Type: TypeString, MaxLength: 2000},
	}},
}
