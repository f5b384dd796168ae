package filter

import (
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
)

const (
	equipmentTypeOfNetwork = "(SELECT equipment.type FROM equipment WHERE equipment.id = networks.equipment_id)"
	roomOfHost             = "(SELECT departments.room_number FROM departments WHERE departments.id = host_computers.department_id)"
)

var Departments = Set{
	Predicates: []Predicate{
		Contains("search", Num("departments.room_number"), Num("departments.internal_phone")),
		ExactInt("employee_count", Num("departments.employee_count")),
		GteInt("min_employees", Num("departments.employee_count")),
	},
	Ordering: map[string]string{
		"id":             "departments.id",
		"room_number":    "departments.room_number",
		"employee_count": "departments.employee_count",
	},
}

var Computers = Set{
	Predicates: []Predicate{
		Contains("search", Text("computers.model"), Num("computers.serial_number")),
		ExactInt("department", Num("computers.department_id")),
		Contains("os_filter", Text("computers.os")),
	},
	Ordering: map[string]string{
		"id":            "computers.id",
		"model":         "computers.model",
		"os":            "computers.os",
		"serial_number": "computers.serial_number",
	},
}

// ComputersExport accepts the export-only parameter names as well
var ComputersExport = Computers.With(
	Contains("os", Text("computers.os")),
	ExactInt("department_id", Num("computers.department_id")),
)

var Users = Set{
	Predicates: []Predicate{
		Contains("search", Text("users.full_name"), Text("users.email"), Text("users.phone")),
		ExactInt("department", Num("users.department_id")),
		ExactInt("position_id", Num("users.position_id")),
	},
	Ordering: map[string]string{
		"id":          "users.id",
		"full_name":   "users.full_name",
		"email":       "users.email",
		"position_id": "users.position_id",
	},
}

var Software = Set{
	Predicates: []Predicate{
		Contains("search", Text("software.name"), Text("software.vendor"), Text("software.license")),
		Custom("license_type", licenseType),
	},
	Ordering: map[string]string{
		"id":      "software.id",
		"name":    "software.name",
		"vendor":  "software.vendor",
		"version": "software.version",
	},
}

// licenseType groups free-form license strings into coarse classes
func licenseType(value string) (database.Scope, error) {
	var words []string
	switch value {
	case "trial":
		words = []string{"trial"}
	case "commercial":
		words = []string{"commercial", "paid"}
	case "free":
		words = []string{"free", "open source"}
	default:
		return nil, &ChoiceError{Value: value}
	}

	cond := ""
	args := make([]any, 0, len(words))
	for i, w := range words {
		if i > 0 {
			cond += " OR "
		}
		cond += "LOWER(software.license) LIKE ?" + database.LikeEscape
		args = append(args, database.ContainsPattern(w))
	}
	cond = "(" + cond + ")"
	return func(db *gorm.DB) *gorm.DB { return db.Where(cond, args...) }, nil
}

var Networks = Set{
	Predicates: []Predicate{
		ExactInt("vlan", Num("networks.vlan")),
		Contains("ip_range", Text("networks.ip_range")),
		Contains("equipment_type", Text(equipmentTypeOfNetwork)),
		ExactInt("equipment", Num("networks.equipment_id")),
		Has("has_computers", "EXISTS (SELECT 1 FROM network_computers WHERE network_computers.network_id = networks.id)"),
		Contains("search",
			Num("networks.vlan"), Text("networks.ip_range"), Text("networks.subnet_mask"), Text(equipmentTypeOfNetwork)),
	},
	Ordering: map[string]string{
		"id":       "networks.id",
		"vlan":     "networks.vlan",
		"ip_range": "networks.ip_range",
	},
	DefaultOrder: "networks.vlan",
}

var Equipment = Set{
	Predicates: []Predicate{
		Contains("type", Text("equipment.type")),
		GteInt("min_ports", Num("equipment.port_count")),
		LteInt("max_ports", Num("equipment.port_count")),
		GteInt("bandwidth_min", Num("equipment.bandwidth")),
		LteInt("bandwidth_max", Num("equipment.bandwidth")),
		GteDate("setup_date_after", Text("equipment.setup_date")),
		LteDate("setup_date_before", Text("equipment.setup_date")),
		Contains("search", Text("equipment.type"), Num("equipment.bandwidth")),
	},
	Ordering: map[string]string{
		"id":         "equipment.id",
		"type":       "equipment.type",
		"bandwidth":  "equipment.bandwidth",
		"port_count": "equipment.port_count",
		"setup_date": "equipment.setup_date",
	},
	DefaultOrder: "equipment.type",
}

// EquipmentExport adds the export date range
var EquipmentExport = Equipment.With(
	GteDate("start_date", Text("equipment.setup_date")),
	LteDate("end_date", Text("equipment.setup_date")),
)

var HostComputers = Set{
	Predicates: []Predicate{
		Contains("hostname", Text("host_computers.hostname")),
		Contains("ip_address", Text("host_computers.ip_address")),
		Contains("mac_address", Text("host_computers.mac_address")),
		ExactInt("department", Num("host_computers.department_id")),
		ExactInt("department_room", Num(roomOfHost)),
		Has("has_department", "host_computers.department_id IS NOT NULL"),
		Contains("search",
			Text("host_computers.hostname"), Text("host_computers.ip_address"),
			Text("host_computers.mac_address"), Num(roomOfHost)),
	},
	Ordering: map[string]string{
		"id":         "host_computers.id",
		"hostname":   "host_computers.hostname",
		"ip_address": "host_computers.ip_address",
	},
	DefaultOrder: "host_computers.hostname",
}

var Servers = Set{
	Predicates: []Predicate{
		Contains("search", Text("servers.hostname"), Text("servers.location")),
		ExactInt("port", Num("servers.port")),
	},
	Ordering: map[string]string{
		"id":              "servers.id",
		"hostname":        "servers.hostname",
		"port":            "servers.port",
		"connection_date": "servers.connection_date",
	},
}

// ServersExport adds the export date range
var ServersExport = Servers.With(
	GteDate("start_date", Text("servers.connection_date")),
	LteDate("end_date", Text("servers.connection_date")),
)

var SoftwareComputers = Set{
	Predicates: []Predicate{
		ExactInt("software", Num("software_computers.software_id")),
		ExactInt("computer", Num("software_computers.computer_id")),
	},
}

var UserComputers = Set{
	Predicates: []Predicate{
		ExactInt("user", Num("user_computers.user_id")),
		ExactInt("computer", Num("user_computers.computer_id")),
	},
}

var ServerNetworks = Set{
	Predicates: []Predicate{
		ExactInt("server", Num("server_networks.server_id")),
		ExactInt("network", Num("server_networks.network_id")),
	},
}

var NetworkComputers = Set{
	Predicates: []Predicate{
		ExactInt("network", Num("network_computers.network_id")),
		ExactInt("computer", Num("network_computers.computer_id")),
	},
}
