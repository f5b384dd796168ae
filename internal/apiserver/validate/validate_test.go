package validate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

func newValidator() *Validator {
	cfg := &config.APIServerConfig{}
	cfg.SetDefaults()
	return New(cfg.Validation)
}

func fields(t *testing.T, err error) map[string]errorx.FieldError {
	t.Helper()
	require.Error(t, err)
	var apiErr *errorx.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "E1001", apiErr.Code)
	return apiErr.Fields
}

func TestRecordTagRules(t *testing.T) {
	v := newValidator()

	f := fields(t, v.Record(&database.Computer{Model: "X"}))
	assert.Equal(t, i18n.MsgFieldRequired, f["serial_number"].MessageID)
	assert.Equal(t, i18n.MsgFieldRequired, f["os"].MessageID)
	assert.NotContains(t, f, "model")

	f = fields(t, v.Record(&database.NetworkComputer{NetworkID: 1, ComputerID: 1, IPAddress: "300.1.1.1", MACAddress: "zz"}))
	assert.Equal(t, i18n.MsgFieldInvalidIP, f["ip_address"].MessageID)
	assert.Equal(t, i18n.MsgFieldInvalidMAC, f["mac_address"].MessageID)

	f = fields(t, v.Record(&database.Server{Hostname: "a", Port: 70000}))
	assert.Equal(t, i18n.MsgFieldMax, f["port"].MessageID)
	assert.Equal(t, "65535", f["port"].Data["Param"])

	f = fields(t, v.Record(&database.UserComputer{UserID: 1}))
	assert.Equal(t, i18n.MsgFieldRequired, f["computer_id"].MessageID)

	assert.NoError(t, v.Record(&database.HostComputer{Hostname: "h", IPAddress: "10.0.0.1", MACAddress: "00:11:22:33:44:55"}))
	assert.NoError(t, v.Record(&database.Network{EquipmentID: 1, SubnetMask: "255.255.255.0"}))
}

func TestDepartmentRules(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Department(&database.Department{RoomNumber: 101, EmployeeCount: 5, EmployeePhones: []int{100}}))

	f := fields(t, v.Department(&database.Department{RoomNumber: 50, EmployeeCount: 0, EmployeePhones: []int{-1}}))
	assert.Equal(t, i18n.MsgFieldRoomRange, f["room_number"].MessageID)
	assert.Equal(t, 100, f["room_number"].Data["Min"])
	assert.Equal(t, i18n.MsgFieldEmployeeRange, f["employee_count"].MessageID)
	assert.Equal(t, i18n.MsgFieldEmployeePhone, f["employee_phones"].MessageID)

	f = fields(t, v.Department(&database.Department{RoomNumber: 101, EmployeeCount: 21}))
	assert.Contains(t, f, "employee_count")
}

func TestLargeDepartmentRuleRunsAfterFieldRules(t *testing.T) {
	cfg := &config.APIServerConfig{}
	cfg.SetDefaults()
	cfg.Validation.RoomMin = 1
	cfg.Validation.LargeDepartmentRoomMin = 50
	v := New(cfg.Validation)

	f := fields(t, v.Department(&database.Department{RoomNumber: 20, EmployeeCount: 15}))
	require.Len(t, f, 1)
	assert.Equal(t, i18n.MsgFieldLargeDepartment, f["room_number"].MessageID)

	assert.NoError(t, v.Department(&database.Department{RoomNumber: 60, EmployeeCount: 15}))
	assert.NoError(t, v.Department(&database.Department{RoomNumber: 20, EmployeeCount: 10}))
}

func TestUserRules(t *testing.T) {
	v := newValidator()
	dept := uint(1)

	ok := &database.User{FullName: "Ann", Phone: "1", Email: "ann@Company.com", PositionID: 1, DepartmentID: &dept}
	assert.NoError(t, v.User(ok))

	f := fields(t, v.User(&database.User{FullName: "Ann", Phone: "1", Email: "not-an-email", PositionID: 3}))
	assert.Equal(t, i18n.MsgFieldInvalidEmail, f["email"].MessageID)

	f = fields(t, v.User(&database.User{FullName: "Ann", Phone: "1", Email: "ann@gmail.com", PositionID: 3}))
	assert.Equal(t, i18n.MsgFieldEmailDomain, f["email"].MessageID)
	assert.Equal(t, "company.com, corp.com", f["email"].Data["Domains"])

	f = fields(t, v.User(&database.User{FullName: "Ann", Phone: "1", Email: "ann@corp.com", PositionID: 2}))
	assert.Equal(t, i18n.MsgFieldManagerNoDept, f["department_id"].MessageID)

	assert.NoError(t, v.User(&database.User{FullName: "Ann", Phone: "1", Email: "ann@corp.com", PositionID: 3}))
}

func TestReferences(t *testing.T) {
	v := newValidator()
	ctx := context.Background()
	exists := func(_ context.Context, id uint) (bool, error) { return id == 1, nil }

	assert.NoError(t, v.References(ctx, RefTo("computer_id", 1, exists), Ref{Field: "department_id", Exists: exists}))

	f := fields(t, v.References(ctx, RefTo("computer_id", 2, exists), RefTo("user_id", 1, exists)))
	require.Len(t, f, 1)
	assert.Equal(t, i18n.MsgFieldReferenceMissing, f["computer_id"].MessageID)

	boom := errors.New("db down")
	err := v.References(ctx, RefTo("x", 1, func(context.Context, uint) (bool, error) { return false, boom }))
	assert.ErrorIs(t, err, boom)
}
