package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/middleware"
	"github.com/gold2201/LocalNetworkProject/internal/auth"
	jsvc "github.com/gold2201/LocalNetworkProject/internal/auth/jwt"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
	"github.com/gold2201/LocalNetworkProject/pkg/export"
	"github.com/gold2201/LocalNetworkProject/pkg/metrics"
)

const (
	testOperator = "operator"
	testPassword = "s3cret-pass"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     database.Database
	cfg    *config.APIServerConfig
	jwt    *jsvc.Service
}

func newTestServer(t *testing.T, opts ...func(*config.APIServerConfig)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.APIServerConfig{}
	cfg.JWT.SecretKey = "this-is-a-very-long-secret-key-for-testing"
	cfg.Operator.Username = testOperator
	cfg.Operator.Password = testPassword
	for _, o := range opts {
		o(cfg)
	}
	cfg.SetDefaults()

	db, err := database.NewDatabase(&config.DatabaseConfig{
		Type:     cnst.DBTypeSQLite,
		DBName:   ":memory:",
		LogLevel: "silent",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	tr := i18n.NewI18n("en")
	require.NoError(t, tr.LoadTranslations(filepath.Join("..", "..", "..", "configs", "i18n")))
	errs := errorx.NewErrorHandler(zap.NewNop(), tr, ClassifyStoreError)
	exp, err := export.NewService(cfg.Export, zap.NewNop(), nil)
	require.NoError(t, err)
	js, err := jsvc.NewService(jsvc.Config{SecretKey: cfg.JWT.SecretKey, Duration: cfg.JWT.Duration})
	require.NoError(t, err)
	op, err := auth.NewOperator(cfg.Operator.Username, cfg.Operator.Password)
	require.NoError(t, err)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	h := NewHandler(Options{
		DB:       db,
		Config:   cfg,
		Exporter: exp,
		Errors:   errs,
		I18n:     tr,
		JWT:      js,
		Operator: op,
		Metrics:  m,
		Logger:   zaptest.NewLogger(t),
	})

	r := gin.New()
	r.Use(errs.RecoveryMiddleware(), middleware.Language("en"))
	h.RegisterRoutes(r)

	return &testServer{t: t, router: r, db: db, cfg: cfg, jwt: js}
}

// do sends body as JSON unless it is a string, which is sent verbatim
func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		buf = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) operatorToken() string {
	s.t.Helper()
	token, _, err := s.jwt.GenerateToken(testOperator, cnst.RoleOperator)
	require.NoError(s.t, err)
	return "Bearer " + token
}

func uintPtr(v uint) *uint { return &v }

type fixture struct {
	dept     *database.Department
	computer *database.Computer
	user     *database.User
	software *database.Software
	equip    *database.Equipment
	network  *database.Network
	conn     *database.NetworkComputer
}

func (s *testServer) seed() fixture {
	s.t.Helper()
	ctx := context.Background()
	db := s.db
	f := fixture{}

	f.dept = &database.Department{RoomNumber: 101, InternalPhone: 1234, EmployeeCount: 4, EmployeePhones: []int{1, 2}}
	require.NoError(s.t, db.Departments().Create(ctx, f.dept))

	f.computer = &database.Computer{SerialNumber: 1001, Model: "ThinkPad", OS: "Windows 11", InventoryNumber: 10, DepartmentID: uintPtr(f.dept.ID)}
	require.NoError(s.t, db.Computers().Create(ctx, f.computer))

	f.user = &database.User{FullName: "Ann Smith", Phone: "555", Email: "ann@company.com", PositionID: 1, DepartmentID: uintPtr(f.dept.ID)}
	require.NoError(s.t, db.Users().Create(ctx, f.user))
	require.NoError(s.t, db.UserComputers().Create(ctx, &database.UserComputer{UserID: f.user.ID, ComputerID: f.computer.ID}))

	f.software = &database.Software{Name: "Office", Version: "2021", License: "Trial", Vendor: "Microsoft"}
	require.NoError(s.t, db.Software().Create(ctx, f.software))
	require.NoError(s.t, db.SoftwareComputers().Create(ctx, &database.SoftwareComputer{SoftwareID: f.software.ID, ComputerID: f.computer.ID}))

	f.equip = &database.Equipment{Type: "Switch", Bandwidth: 1000, PortCount: 24, SetupDate: database.NewDate(2024, time.January, 15)}
	require.NoError(s.t, db.Equipment().Create(ctx, f.equip))

	f.network = &database.Network{SubnetMask: "255.255.255.0", VLAN: 10, IPRange: "10.0.10.0/24", EquipmentID: f.equip.ID}
	require.NoError(s.t, db.Networks().Create(ctx, f.network))

	f.conn = &database.NetworkComputer{NetworkID: f.network.ID, ComputerID: f.computer.ID, IPAddress: "10.0.10.5", MACAddress: "00:11:22:33:44:55", Speed: 1000}
	require.NoError(s.t, db.NetworkComputers().Create(ctx, f.conn))
	return f
}

func idPath(prefix string, id uint) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
