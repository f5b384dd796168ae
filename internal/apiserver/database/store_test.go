package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Type:     cnst.DBTypeSQLite,
		DBName:   ":memory:",
		LogLevel: "silent",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func uintPtr(v uint) *uint { return &v }

type fixture struct {
	dept     *Department
	computer *Computer
	user     *User
	software *Software
	equip    *Equipment
	network  *Network
	conn     *NetworkComputer
	server   *Server
	host     *HostComputer
}

func seed(t *testing.T, db Database) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{}

	f.dept = &Department{RoomNumber: 101, InternalPhone: 1234, EmployeeCount: 4, EmployeePhones: []int{1, 2}}
	require.NoError(t, db.Departments().Create(ctx, f.dept))

	f.computer = &Computer{SerialNumber: 1001, Model: "ThinkPad", OS: "Windows 11", InventoryNumber: 10, DepartmentID: uintPtr(f.dept.ID)}
	require.NoError(t, db.Computers().Create(ctx, f.computer))

	f.user = &User{FullName: "Ann Smith", Phone: "555", Email: "ann@company.com", PositionID: 1, DepartmentID: uintPtr(f.dept.ID)}
	require.NoError(t, db.Users().Create(ctx, f.user))
	require.NoError(t, db.UserComputers().Create(ctx, &UserComputer{UserID: f.user.ID, ComputerID: f.computer.ID}))

	f.software = &Software{Name: "Office", Version: "2021", License: "Trial", Vendor: "Microsoft"}
	require.NoError(t, db.Software().Create(ctx, f.software))
	require.NoError(t, db.SoftwareComputers().Create(ctx, &SoftwareComputer{SoftwareID: f.software.ID, ComputerID: f.computer.ID}))

	f.equip = &Equipment{Type: "Switch", Bandwidth: 1000, PortCount: 24, SetupDate: NewDate(2023, time.March, 5)}
	require.NoError(t, db.Equipment().Create(ctx, f.equip))

	f.network = &Network{SubnetMask: "255.255.255.0", VLAN: 10, IPRange: "10.0.0.0/24", EquipmentID: f.equip.ID}
	require.NoError(t, db.Networks().Create(ctx, f.network))

	f.conn = &NetworkComputer{NetworkID: f.network.ID, ComputerID: f.computer.ID, IPAddress: "10.0.0.5", MACAddress: "aa:bb:cc:dd:ee:ff", Speed: 1000}
	require.NoError(t, db.NetworkComputers().Create(ctx, f.conn))

	f.server = &Server{Port: 443, Hostname: "srv-1", ConnectionDate: NewDate(2024, time.January, 1), Location: "DC"}
	require.NoError(t, db.Servers().Create(ctx, f.server))
	require.NoError(t, db.ServerNetworks().Create(ctx, &ServerNetwork{ServerID: f.server.ID, NetworkID: f.network.ID}))

	f.host = &HostComputer{Hostname: "gw-101", IPAddress: "10.0.0.1", MACAddress: "00:11:22:33:44:55", DepartmentID: uintPtr(f.dept.ID)}
	require.NoError(t, db.HostComputers().Create(ctx, f.host))
	return f
}

func TestRepoCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	got, err := db.Computers().Get(ctx, f.computer.ID)
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad", got.Model)
	require.NotNil(t, got.Department)
	assert.Equal(t, 101, got.Department.RoomNumber)

	got.Model = "ThinkPad X1"
	require.NoError(t, db.Computers().Update(ctx, got))
	got, err = db.Computers().Get(ctx, f.computer.ID)
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad X1", got.Model)

	dept, err := db.Departments().Get(ctx, f.dept.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, []int(dept.EmployeePhones))

	eq, err := db.Equipment().Get(ctx, f.equip.ID)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-05", eq.SetupDate.String())

	n, err := db.Computers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := db.Computers().Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = db.Computers().Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.Computers().Delete(ctx, 999), ErrNotFound)
}

func TestRepoListScopes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, vlan := range []int{30, 10, 20} {
		eq := &Equipment{Type: "Router", PortCount: 8}
		require.NoError(t, db.Equipment().Create(ctx, eq))
		require.NoError(t, db.Networks().Create(ctx, &Network{VLAN: vlan, EquipmentID: eq.ID}))
	}

	all, err := db.Networks().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 30, all[0].VLAN)
	require.NotNil(t, all[0].Equipment)

	byVLAN, err := db.Networks().List(ctx, func(q *gorm.DB) *gorm.DB { return q.Order("vlan") })
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, []int{byVLAN[0].VLAN, byVLAN[1].VLAN, byVLAN[2].VLAN})
}

func TestUniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	err := db.Computers().Create(ctx, &Computer{SerialNumber: 1001, Model: "Dup", OS: "Linux", InventoryNumber: 1})
	assert.ErrorIs(t, err, ErrConflict)

	err = db.Software().Create(ctx, &Software{Name: "Office", Version: "2021"})
	assert.ErrorIs(t, err, ErrConflict)

	err = db.UserComputers().Create(ctx, &UserComputer{UserID: f.user.ID, ComputerID: f.computer.ID})
	assert.ErrorIs(t, err, ErrConflict)

	taken, err := db.SerialNumberTaken(ctx, 1001, 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = db.SerialNumberTaken(ctx, 1001, f.computer.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = db.EmailTaken(ctx, "ANN@company.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = db.SoftwareTaken(ctx, "Office", "2022", 0)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = db.HostDepartmentTaken(ctx, f.dept.ID, 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestDeleteDepartmentNullsReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	require.NoError(t, db.Departments().Delete(ctx, f.dept.ID))

	c, err := db.Computers().Get(ctx, f.computer.ID)
	require.NoError(t, err)
	assert.Nil(t, c.DepartmentID)

	u, err := db.Users().Get(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Nil(t, u.DepartmentID)

	h, err := db.HostComputers().Get(ctx, f.host.ID)
	require.NoError(t, err)
	assert.Nil(t, h.DepartmentID)
}

func TestDeleteEquipmentCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	require.NoError(t, db.Equipment().Delete(ctx, f.equip.ID))

	n, err := db.Networks().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = db.NetworkComputers().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = db.ServerNetworks().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	ok, err := db.Computers().Exists(ctx, f.computer.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteComputerRemovesLinks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	require.NoError(t, db.Computers().Delete(ctx, f.computer.ID))

	for name, repoCount := range map[string]func() (int64, error){
		"user_computers":     func() (int64, error) { return db.UserComputers().Count(ctx) },
		"software_computers": func() (int64, error) { return db.SoftwareComputers().Count(ctx) },
		"network_computers":  func() (int64, error) { return db.NetworkComputers().Count(ctx) },
	} {
		n, err := repoCount()
		require.NoError(t, err, name)
		assert.Zero(t, n, name)
	}
}

func TestTransactionRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, db.Departments().Create(ctx, &Department{RoomNumber: 200, EmployeeCount: 2}))
		return db.Departments().Create(ctx, &Department{ID: 1, RoomNumber: 201, EmployeeCount: 2})
	})
	require.Error(t, err)

	n, err := db.Departments().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDerivedExtras(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	// a second, slower connection must not change the reported speed
	n2 := &Network{VLAN: 20, EquipmentID: f.equip.ID}
	require.NoError(t, db.Networks().Create(ctx, n2))
	require.NoError(t, db.NetworkComputers().Create(ctx, &NetworkComputer{NetworkID: n2.ID, ComputerID: f.computer.ID, Speed: 100}))

	de, err := db.DepartmentExtras(ctx, []uint{f.dept.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), de[f.dept.ID].ComputersCount)
	require.NotNil(t, de[f.dept.ID].HostComputerIP)
	assert.Equal(t, "10.0.0.1", *de[f.dept.ID].HostComputerIP)

	ce, err := db.ComputerExtras(ctx, []uint{f.computer.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ce[f.computer.ID].UsersCount)
	assert.Equal(t, []string{"Office"}, ce[f.computer.ID].SoftwareList)
	assert.Equal(t, 1000, ce[f.computer.ID].NetworkSpeed)

	ue, err := db.UserExtras(ctx, []uint{f.user.ID})
	require.NoError(t, err)
	require.Len(t, ue[f.user.ID].Computers, 1)
	assert.Equal(t, "Windows 11", ue[f.user.ID].Computers[0].OS)

	se, err := db.SoftwareExtras(ctx, []uint{f.software.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), se[f.software.ID].InstalledCount)
	assert.Equal(t, []string{"Windows 11"}, se[f.software.ID].PopularOS)

	ne, err := db.NetworkExtras(ctx, []uint{f.network.ID})
	require.NoError(t, err)
	require.Len(t, ne[f.network.ID].Connections, 1)
	assert.Equal(t, "ThinkPad", ne[f.network.ID].Connections[0].Computer.Model)

	sv, err := db.ServerExtras(ctx, []uint{f.server.ID})
	require.NoError(t, err)
	assert.Equal(t, []int{10}, sv[f.server.ID].VLANs)

	empty, err := db.ComputerExtras(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLabels(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	cases := map[string]struct {
		id   uint
		want string
	}{
		"department":    {f.dept.ID, "Department 101 (phone: 1234)"},
		"computer":      {f.computer.ID, "ThinkPad (SN: 1001)"},
		"user":          {f.user.ID, "Ann Smith"},
		"software":      {f.software.ID, "Office 2021"},
		"equipment":     {f.equip.ID, "Switch (ports: 24)"},
		"network":       {f.network.ID, "VLAN 10 (10.0.0.0/24)"},
		"server":        {f.server.ID, "srv-1"},
		"host_computer": {f.host.ID, "gw-101 (10.0.0.1)"},
	}
	for entity, tc := range cases {
		got, err := db.Label(ctx, entity, tc.id)
		require.NoError(t, err, entity)
		assert.Equal(t, tc.want, got, entity)
	}
	assert.Len(t, db.LabelEntities(), len(cases))

	_, err := db.Label(ctx, "computer", 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.Label(ctx, "printer", 1)
	assert.Error(t, err)
}

func TestAttachDefaultNetwork(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	cfg := config.ProvisioningConfig{PlaceholderIP: "0.0.0.0", PlaceholderMAC: "00:00:00:00:00:00"}
	_, err := db.AttachDefaultNetwork(ctx, f.computer.ID, cfg)
	assert.ErrorIs(t, err, ErrNoDefaultNetwork)

	cfg.DefaultNetworkID = 999
	_, err = db.AttachDefaultNetwork(ctx, f.computer.ID, cfg)
	assert.ErrorIs(t, err, ErrReference)

	n2 := &Network{VLAN: 99, EquipmentID: f.equip.ID}
	require.NoError(t, db.Networks().Create(ctx, n2))
	cfg.DefaultNetworkID = n2.ID

	_, err = db.AttachDefaultNetwork(ctx, 999, cfg)
	assert.ErrorIs(t, err, ErrNotFound)

	nc, err := db.AttachDefaultNetwork(ctx, f.computer.ID, cfg)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", nc.IPAddress)
	assert.Equal(t, "00:00:00:00:00:00", nc.MACAddress)
	assert.Zero(t, nc.Speed)

	_, err = db.AttachDefaultNetwork(ctx, f.computer.ID, cfg)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestInChunks(t *testing.T) {
	old := idChunkSize
	idChunkSize = 2
	t.Cleanup(func() { idChunkSize = old })

	var got [][]uint
	require.NoError(t, inChunks([]uint{1, 2, 3, 4, 5}, func(chunk []uint) error {
		got = append(got, chunk)
		return nil
	}))
	assert.Equal(t, [][]uint{{1, 2}, {3, 4}, {5}}, got)
	assert.NoError(t, inChunks(nil, func([]uint) error { return errors.New("not called") }))
}

func TestDerivedExtrasLargeIDList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	// more ids than SQLite accepts as bound parameters in one statement
	ids := make([]uint, 0, 40000)
	for i := uint(1); i <= 40000; i++ {
		ids = append(ids, i)
	}

	ce, err := db.ComputerExtras(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ce[f.computer.ID].UsersCount)

	de, err := db.DepartmentExtras(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(1), de[f.dept.ID].ComputersCount)

	_, err = db.UserExtras(ctx, ids)
	require.NoError(t, err)
	_, err = db.SoftwareExtras(ctx, ids)
	require.NoError(t, err)
	_, err = db.NetworkExtras(ctx, ids)
	require.NoError(t, err)
	_, err = db.ServerExtras(ctx, ids)
	require.NoError(t, err)
}
