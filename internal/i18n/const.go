package i18n

// Error messages
const (
	MsgErrorValidation         = "ErrorValidation"
	MsgErrorUnauthorized       = "ErrorUnauthorized"
	MsgErrorForbidden          = "ErrorForbidden"
	MsgErrorNotFound           = "ErrorNotFound"
	MsgErrorConflict           = "ErrorConflict"
	MsgErrorQueryExecution     = "ErrorQueryExecution"
	MsgErrorInternal           = "ErrorInternal"
	MsgErrorPanic              = "ErrorPanic"
	MsgErrorInvalidCredentials = "ErrorInvalidCredentials"
	MsgErrorNoDefaultNetwork   = "ErrorNoDefaultNetwork"
)

// Conflict details
const (
	MsgConflictSerialNumber   = "ConflictSerialNumber"
	MsgConflictEmail          = "ConflictEmail"
	MsgConflictSoftware       = "ConflictSoftware"
	MsgConflictAssociation    = "ConflictAssociation"
	MsgConflictHostDepartment = "ConflictHostDepartment"
)

// Field level validation messages
const (
	MsgFieldRequired         = "FieldRequired"
	MsgFieldInvalidEmail     = "FieldInvalidEmail"
	MsgFieldInvalidIP        = "FieldInvalidIP"
	MsgFieldInvalidMAC       = "FieldInvalidMAC"
	MsgFieldMin              = "FieldMin"
	MsgFieldMax              = "FieldMax"
	MsgFieldInvalid          = "FieldInvalid"
	MsgFieldRoomRange        = "FieldRoomRange"
	MsgFieldEmployeeRange    = "FieldEmployeeRange"
	MsgFieldEmployeePhone    = "FieldEmployeePhone"
	MsgFieldLargeDepartment  = "FieldLargeDepartment"
	MsgFieldEmailDomain      = "FieldEmailDomain"
	MsgFieldManagerNoDept    = "FieldManagerNoDept"
	MsgFieldReferenceMissing = "FieldReferenceMissing"
	MsgFieldInvalidInteger   = "FieldInvalidInteger"
	MsgFieldInvalidDate      = "FieldInvalidDate"
	MsgFieldInvalidBool      = "FieldInvalidBool"
	MsgFieldInvalidOrdering  = "FieldInvalidOrdering"
	MsgFieldUnknownChoice    = "FieldUnknownChoice"
	MsgFieldMalformedBody    = "FieldMalformedBody"
)

// Database console messages
const (
	MsgConsoleEmptyQuery      = "ConsoleEmptyQuery"
	MsgConsoleConfirmRequired = "ConsoleConfirmRequired"
	MsgConsoleCommandDone     = "ConsoleCommandDone"
	MsgConsoleNoResultSet     = "ConsoleNoResultSet"
	MsgConsoleTableRequired   = "ConsoleTableRequired"
	MsgConsoleTableNotFound   = "ConsoleTableNotFound"
)

// Misc
const (
	MsgNotAssigned = "NotAssigned"
)

// defaultMessages are the English texts compiled into the binary so
// responses stay readable without translation files on disk.
var defaultMessages = map[string]string{
	MsgErrorValidation:         "Validation failed",
	MsgErrorUnauthorized:       "Authentication required",
	MsgErrorForbidden:          "Access denied",
	MsgErrorNotFound:           "Requested resource not found",
	MsgErrorConflict:           "Resource already exists",
	MsgErrorQueryExecution:     "Query execution failed: {{.Reason}}",
	MsgErrorInternal:           "Internal server error occurred",
	MsgErrorPanic:              "Internal server error occurred",
	MsgErrorInvalidCredentials: "Invalid username or password",
	MsgErrorNoDefaultNetwork:   "No default network is configured",

	MsgConflictSerialNumber:   "A computer with this serial number already exists",
	MsgConflictEmail:          "A user with this email already exists",
	MsgConflictSoftware:       "Software with this name and version already exists",
	MsgConflictAssociation:    "This association already exists",
	MsgConflictHostDepartment: "This department already has a host computer",

	MsgFieldRequired:         "This field is required",
	MsgFieldInvalidEmail:     "Enter a valid email address",
	MsgFieldInvalidIP:        "Enter a valid IP address",
	MsgFieldInvalidMAC:       "Enter a valid MAC address",
	MsgFieldMin:              "Must be at least {{.Param}}",
	MsgFieldMax:              "Must be at most {{.Param}}",
	MsgFieldInvalid:          "Invalid value",
	MsgFieldRoomRange:        "Room number must be between {{.Min}} and {{.Max}}",
	MsgFieldEmployeeRange:    "Employee count must be between {{.Min}} and {{.Max}}",
	MsgFieldEmployeePhone:    "Employee phone numbers must be positive",
	MsgFieldLargeDepartment:  "Departments with more than {{.Threshold}} employees need a room number of at least {{.Min}}",
	MsgFieldEmailDomain:      "Email must use one of the domains: {{.Domains}}",
	MsgFieldManagerNoDept:    "Managers must be assigned to a department",
	MsgFieldReferenceMissing: "Referenced record does not exist",
	MsgFieldInvalidInteger:   "Must be an integer",
	MsgFieldInvalidDate:      "Must be a date in YYYY-MM-DD format",
	MsgFieldInvalidBool:      "Must be true or false",
	MsgFieldInvalidOrdering:  "Unsupported ordering field",
	MsgFieldUnknownChoice:    "Unknown value {{.Value}}",
	MsgFieldMalformedBody:    "Malformed request body",

	MsgConsoleEmptyQuery:      "Query must not be empty",
	MsgConsoleConfirmRequired: "This statement contains a destructive operation ({{.Keyword}}). Resend with confirmation to execute it.",
	MsgConsoleCommandDone:     "Command executed successfully. Rows affected: {{.Rows}}",
	MsgConsoleNoResultSet:     "Query returned no result set",
	MsgConsoleTableRequired:   "Table name is required",
	MsgConsoleTableNotFound:   "Table {{.Table}} not found",

	MsgNotAssigned: "Not assigned",
}
