package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/common/config"
)

// ErrNoDefaultNetwork is returned when provisioning has no network to attach to
var ErrNoDefaultNetwork = errors.New("default network is not configured")

func (s *store) AttachDefaultNetwork(ctx context.Context, computerID uint, cfg config.ProvisioningConfig) (*NetworkComputer, error) {
	if cfg.DefaultNetworkID == 0 {
		return nil, ErrNoDefaultNetwork
	}

	var nc *NetworkComputer
	err := runInTx(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.computers.Get(ctx, computerID); err != nil {
			return err
		}
		ok, err := s.networks.Exists(ctx, cfg.DefaultNetworkID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("default network %d: %w", cfg.DefaultNetworkID, ErrReference)
		}

		link := &NetworkComputer{
			NetworkID:  cfg.DefaultNetworkID,
			ComputerID: computerID,
			IPAddress:  cfg.PlaceholderIP,
			MACAddress: cfg.PlaceholderMAC,
		}
		if err := s.networkComputers.Create(ctx, link); err != nil {
			return err
		}
		nc = link
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attached computer to default network",
		zap.Uint("computer_id", computerID),
		zap.Uint("network_id", cfg.DefaultNetworkID))
	return nc, nil
}
