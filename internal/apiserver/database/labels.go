package database

import (
	"context"
	"fmt"
)

// Labels resolves the human-readable form of a referenced record
type Labels interface {
	// Label returns the label of the entity row, e.g. Label(ctx, "department", 3).
	Label(ctx context.Context, entity string, id uint) (string, error)
	// LabelEntities lists the entity names Label understands.
	LabelEntities() []string
}

func (d Department) Label() string {
	return fmt.Sprintf("Department %d (phone: %d)", d.RoomNumber, d.InternalPhone)
}

func (c Computer) Label() string {
	return fmt.Sprintf("%s (SN: %d)", c.Model, c.SerialNumber)
}

func (u User) Label() string { return u.FullName }

func (s Software) Label() string {
	return fmt.Sprintf("%s %s", s.Name, s.Version)
}

func (e Equipment) Label() string {
	return fmt.Sprintf("%s (ports: %d)", e.Type, e.PortCount)
}

func (n Network) Label() string {
	return fmt.Sprintf("VLAN %d (%s)", n.VLAN, n.IPRange)
}

func (s Server) Label() string { return s.Hostname }

func (h HostComputer) Label() string {
	return fmt.Sprintf("%s (%s)", h.Hostname, h.IPAddress)
}

type labeler interface{ Label() string }

func labelOf[T labeler](ctx context.Context, r *Repo[T], id uint) (string, error) {
	v, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return (*v).Label(), nil
}

func (s *store) Label(ctx context.Context, entity string, id uint) (string, error) {
	switch entity {
	case "department":
		return labelOf(ctx, s.departments, id)
	case "computer":
		return labelOf(ctx, s.computers, id)
	case "user":
		return labelOf(ctx, s.users, id)
	case "software":
		return labelOf(ctx, s.software, id)
	case "equipment":
		return labelOf(ctx, s.equipment, id)
	case "network":
		return labelOf(ctx, s.networks, id)
	case "server":
		return labelOf(ctx, s.servers, id)
	case "host_computer":
		return labelOf(ctx, s.hostComputers, id)
	default:
		return "", fmt.Errorf("no label for entity %q", entity)
	}
}

func (s *store) LabelEntities() []string {
	return []string{"department", "computer", "user", "software", "equipment", "network", "server", "host_computer"}
}
