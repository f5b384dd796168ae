package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentStatistics(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	st, err := db.DepartmentStatistics(ctx, f.dept.ID)
	require.NoError(t, err)
	assert.Equal(t, 101, st.RoomNumber)
	assert.Equal(t, int64(1), st.TotalComputers)
	assert.Equal(t, int64(1), st.TotalUsers)
	assert.Equal(t, 0.25, st.ComputersPerEmployee)
	assert.True(t, st.IsUnderEquipped)

	empty := &Department{RoomNumber: 300, EmployeeCount: 0}
	require.NoError(t, db.Departments().Create(ctx, empty))
	st, err = db.DepartmentStatistics(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, st.ComputersPerEmployee)
	assert.True(t, st.IsUnderEquipped)

	_, err = db.DepartmentStatistics(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComputerReport(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)
	require.NoError(t, db.Computers().Create(ctx, &Computer{
		SerialNumber: 2002, Model: "Dell", OS: "Ubuntu Linux", InventoryNumber: 30, DepartmentID: uintPtr(f.dept.ID),
	}))

	rep, err := db.ComputerReport(ctx)
	require.NoError(t, err)
	require.Len(t, rep.ByOSAndDepartment, 2)
	assert.Equal(t, "Ubuntu Linux", rep.ByOSAndDepartment[0].OS)
	assert.Equal(t, 30.0, rep.ByOSAndDepartment[0].AvgInventory)

	require.Len(t, rep.ByDepartment, 1)
	row := rep.ByDepartment[0]
	require.NotNil(t, row.DepartmentRoomNumber)
	assert.Equal(t, 101, *row.DepartmentRoomNumber)
	assert.Equal(t, int64(2), row.TotalComputers)
	assert.Equal(t, int64(1), row.WindowsCount)
	assert.Equal(t, int64(1), row.LinuxCount)
}

func TestComputerNetworkStatsAndDetails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)
	require.NoError(t, db.Computers().Create(ctx, &Computer{SerialNumber: 3003, Model: "Offline", OS: "Linux", InventoryNumber: 1}))

	stats, err := db.ComputerNetworkStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, f.computer.ID, stats[0].ID)
	assert.Equal(t, 1000, stats[0].NetworkSpeed)
	assert.Equal(t, "10.0.0.5", stats[0].IPAddress)
	require.NotNil(t, stats[0].DepartmentRoom)

	d, err := db.ComputerDetails(ctx, f.computer.ID)
	require.NoError(t, err)
	require.NotNil(t, d.Department.ID)
	assert.Equal(t, f.dept.ID, *d.Department.ID)
	require.Len(t, d.Users, 1)
	assert.Equal(t, "ann@company.com", d.Users[0].Email)
	require.Len(t, d.Software, 1)
	assert.Equal(t, "2021", d.Software[0].Version)
	require.Len(t, d.NetworkConnections, 1)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", d.NetworkConnections[0].MACAddress)
}

func TestUserReports(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)
	require.NoError(t, db.Users().Create(ctx, &User{FullName: "Bob", Email: "bob@corp.com", PositionID: 5}))

	managers, err := db.UsersByPosition(ctx, []int64{1, 2}, true)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "Ann Smith", managers[0].FullName)

	others, err := db.UsersByPosition(ctx, []int64{1, 2}, false)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "Bob", others[0].FullName)

	h, err := db.UserComputerHistory(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", h.User)
	assert.Equal(t, 1, h.TotalComputers)
	assert.Equal(t, int64(1001), h.Computers[0].SerialNumber)

	st, err := db.UserStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Total)
	assert.Len(t, st.ByPosition, 2)
	assert.Len(t, st.ByDepartment, 2)
	assert.Equal(t, int64(1), st.WithComputers)
	assert.Equal(t, int64(1), st.WithoutComputers)
}

func TestSoftwareReports(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)
	unused := &Software{Name: "Vim", Version: "9", License: "Free", Vendor: "OSS"}
	require.NoError(t, db.Software().Create(ctx, unused))

	popular, err := db.SoftwareByPopularity(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, f.software.ID, popular[0].ID)

	cc, err := db.CompatibleComputers(ctx, f.software.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office 2021", cc.Software)
	assert.Equal(t, 1, cc.CompatibleComputersCount)

	ls, err := db.LicenseSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ls.TotalSoftware)
	assert.Equal(t, int64(1), ls.TotalInstallations)
	assert.Len(t, ls.LicenseSummary, 2)

	dist, err := db.SoftwareDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, dist, 1)
	assert.Equal(t, int64(1), dist[0].DepartmentCount)

	byVendor, err := db.SoftwareByVendor(ctx, "micro")
	require.NoError(t, err)
	require.Len(t, byVendor, 1)
	assert.Equal(t, int64(1), byVendor[0].InstallCount)

	byVendor, err = db.SoftwareByVendor(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, byVendor)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%abc%", ContainsPattern("ABC"))
	assert.Equal(t, "%100!%!_x!!%", ContainsPattern("100%_x!"))
}

func TestNetworkAndEquipmentReports(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	st, err := db.NetworkStatistics(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, st.TotalNetworks)
	assert.Zero(t, st.AverageVLAN)
	assert.Nil(t, st.MaxVLAN)
	assert.Empty(t, st.VLANDistribution)

	f := seed(t, db)

	st, err = db.NetworkStatistics(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.TotalNetworks)
	assert.Equal(t, 10.0, st.AverageVLAN)
	require.NotNil(t, st.MaxVLAN)
	assert.Equal(t, 10, *st.MaxVLAN)
	assert.Equal(t, int64(1), st.TotalComputersConnected)
	assert.Equal(t, []VLANCount{{VLAN: 10, Count: 1}}, st.VLANDistribution)

	d, err := db.NetworkDetails(ctx, f.network.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ConnectedComputersCount)
	require.NotNil(t, d.EquipmentInfo)
	assert.Equal(t, "05.03.2023", d.EquipmentInfo.SetupDate)
	require.Len(t, d.RecentComputers, 1)
	assert.Equal(t, int64(1001), d.RecentComputers[0].SerialNumber)

	es, err := db.EquipmentStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), es.TotalEquipment)
	assert.Equal(t, 24.0, es.AveragePorts)
	assert.Equal(t, []TypeCount{{Type: "Switch", Count: 1}}, es.TypeDistribution)

	usage, err := db.NetworkUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 1000, usage[0].MaxSpeed)

	fast, err := db.HighSpeedConnections(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, fast, 1)
	assert.Equal(t, "ThinkPad", fast[0].ComputerModel)
	assert.Equal(t, 10, fast[0].NetworkVLAN)

	fast, err = db.HighSpeedConnections(ctx, 10000)
	require.NoError(t, err)
	assert.Empty(t, fast)
}

func TestAnalyticsThresholds(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seed(t, db)

	stats, err := db.DepartmentStats(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, stats)

	stats, err = db.DepartmentStats(ctx, 0)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 101, stats[0].RoomNumber)
	assert.Equal(t, 10.0, stats[0].AvgInventory)

	rel, err := db.UserComputerRelationships(ctx)
	require.NoError(t, err)
	require.Len(t, rel, 1)
	require.NotNil(t, rel[0].DepartmentName)
	assert.Equal(t, f.dept.RoomNumber, *rel[0].DepartmentName)
}
