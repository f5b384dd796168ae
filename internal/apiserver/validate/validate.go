// Package validate checks records before they are written.
//
// Checks run in stages and stop at the first stage that fails: field rules
// declared per type, then field rules with configurable bounds, then rules
// across fields, then references to other records.
package validate

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// fieldRules are the tag rules of each record type, keyed by Go field name
var fieldRules = []struct {
	typ   any
	rules map[string]string
}{
	{database.Computer{}, map[string]string{
		"SerialNumber":    "required",
		"Model":           "required",
		"OS":              "required",
		"InventoryNumber": "required",
	}},
	{database.User{}, map[string]string{
		"FullName":   "required",
		"Phone":      "required",
		"Email":      "required,email",
		"PositionID": "required",
	}},
	{database.Software{}, map[string]string{
		"Name":    "required",
		"Version": "required",
		"License": "required",
		"Vendor":  "required",
	}},
	{database.Equipment{}, map[string]string{
		"Type":      "required",
		"Bandwidth": "gte=0",
		"PortCount": "gte=0",
	}},
	{database.Network{}, map[string]string{
		"EquipmentID": "required",
		"SubnetMask":  "required,ip",
	}},
	{database.NetworkComputer{}, map[string]string{
		"NetworkID":  "required",
		"ComputerID": "required",
		"IPAddress":  "required,ip",
		"MACAddress": "required,mac",
		"Speed":      "gte=0",
	}},
	{database.HostComputer{}, map[string]string{
		"Hostname":   "required",
		"IPAddress":  "required,ip",
		"MACAddress": "required,mac",
	}},
	{database.Server{}, map[string]string{
		"Hostname": "required",
		"Port":     "gte=0,lte=65535",
	}},
	{database.UserComputer{}, map[string]string{"UserID": "required", "ComputerID": "required"}},
	{database.SoftwareComputer{}, map[string]string{"SoftwareID": "required", "ComputerID": "required"}},
	{database.ServerNetwork{}, map[string]string{"ServerID": "required", "NetworkID": "required"}},
}

var tagMessages = map[string]string{
	"required": i18n.MsgFieldRequired,
	"email":    i18n.MsgFieldInvalidEmail,
	"ip":       i18n.MsgFieldInvalidIP,
	"mac":      i18n.MsgFieldInvalidMAC,
	"gte":      i18n.MsgFieldMin,
	"min":      i18n.MsgFieldMin,
	"lte":      i18n.MsgFieldMax,
	"max":      i18n.MsgFieldMax,
}

// Validator validates records using the configured bounds
type Validator struct {
	v   *validator.Validate
	cfg config.ValidationConfig
}

// New creates a Validator
func New(cfg config.ValidationConfig) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for _, fr := range fieldRules {
		v.RegisterStructValidationMapRules(fr.rules, fr.typ)
	}
	return &Validator{v: v, cfg: cfg}
}

// Record runs the tag rules of rec, which must be a pointer to a record
func (v *Validator) Record(rec any) error {
	err := v.v.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorx.InternalError(err)
	}

	fields := make(map[string]errorx.FieldError, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = i18n.MsgFieldInvalid
		}
		var data map[string]any
		if fe.Param() != "" {
			data = map[string]any{"Param": fe.Param()}
		}
		fields[fe.Field()] = errorx.FieldError{MessageID: msg, Data: data}
	}
	return errorx.ValidationError(fields)
}

// Department checks ranges, phones and the large department rule
func (v *Validator) Department(d *database.Department) error {
	if err := v.Record(d); err != nil {
		return err
	}

	fields := map[string]errorx.FieldError{}
	if d.RoomNumber < v.cfg.RoomMin || d.RoomNumber > v.cfg.RoomMax {
		fields["room_number"] = errorx.FieldError{
			MessageID: i18n.MsgFieldRoomRange,
			Data:      map[string]any{"Min": v.cfg.RoomMin, "Max": v.cfg.RoomMax},
		}
	}
	if d.EmployeeCount < v.cfg.EmployeeMin || d.EmployeeCount > v.cfg.EmployeeMax {
		fields["employee_count"] = errorx.FieldError{
			MessageID: i18n.MsgFieldEmployeeRange,
			Data:      map[string]any{"Min": v.cfg.EmployeeMin, "Max": v.cfg.EmployeeMax},
		}
	}
	for _, p := range d.EmployeePhones {
		if p <= 0 {
			fields["employee_phones"] = errorx.FieldError{MessageID: i18n.MsgFieldEmployeePhone}
			break
		}
	}
	if len(fields) > 0 {
		return errorx.ValidationError(fields)
	}

	if d.EmployeeCount > v.cfg.LargeDepartmentThreshold && d.RoomNumber < v.cfg.LargeDepartmentRoomMin {
		return errorx.FieldValidationError("room_number", i18n.MsgFieldLargeDepartment, map[string]any{
			"Threshold": v.cfg.LargeDepartmentThreshold,
			"Min":       v.cfg.LargeDepartmentRoomMin,
		})
	}
	return nil
}

// User checks the email domain and that managers have a department
func (v *Validator) User(u *database.User) error {
	if err := v.Record(u); err != nil {
		return err
	}

	if len(v.cfg.AllowedEmailDomains) > 0 {
		_, domain, _ := strings.Cut(u.Email, "@")
		allowed := slices.ContainsFunc(v.cfg.AllowedEmailDomains, func(d string) bool {
			return strings.EqualFold(d, domain)
		})
		if !allowed {
			return errorx.FieldValidationError("email", i18n.MsgFieldEmailDomain, map[string]any{
				"Domains": strings.Join(v.cfg.AllowedEmailDomains, ", "),
			})
		}
	}

	if slices.Contains(v.cfg.ManagerPositions, int64(u.PositionID)) && u.DepartmentID == nil {
		return errorx.FieldValidationError("department_id", i18n.MsgFieldManagerNoDept, nil)
	}
	return nil
}

// Ref is a reference from a record field to another record
type Ref struct {
	Field  string
	ID     *uint
	Exists func(ctx context.Context, id uint) (bool, error)
}

// RefTo builds a Ref for a required reference
func RefTo(field string, id uint, exists func(ctx context.Context, id uint) (bool, error)) Ref {
	return Ref{Field: field, ID: &id, Exists: exists}
}

// References checks that every non-nil reference points at an existing record
func (v *Validator) References(ctx context.Context, refs ...Ref) error {
	fields := map[string]errorx.FieldError{}
	for _, r := range refs {
		if r.ID == nil {
			continue
		}
		ok, err := r.Exists(ctx, *r.ID)
		if err != nil {
			return err
		}
		if !ok {
			fields[r.Field] = errorx.FieldError{MessageID: i18n.MsgFieldReferenceMissing}
		}
	}
	if len(fields) > 0 {
		return errorx.ValidationError(fields)
	}
	return nil
}
