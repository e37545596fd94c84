package provider

import (
	"fmt"
	"sync"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/infrastructure/balanceloader"
)

type walletProviderImpl struct {
	loader       port.WalletProvider
	logger       port.Logger
	mu           sync.RWMutex
	walletsCache []entity.Wallet
}

// NewWalletProvider creates a WalletProvider reading the balances file at
// filePath. The file is read once and kept in memory.
func NewWalletProvider(filePath string, logger port.Logger) port.WalletProvider {
	return &walletProviderImpl{
		loader: balanceloader.NewBalanceFileLoader(filePath, logger.Debug),
		logger: logger,
	}
}

// GetWallets returns the wallets, loading them on first use.
func (p *walletProviderImpl) GetWallets() ([]entity.Wallet, error) {
	p.mu.RLock()
	cached := p.walletsCache
	p.mu.RUnlock()
	if cached != nil {
		p.logger.Debug("Returning cached wallets", "count", len(cached))
		return cloneWallets(cached), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.walletsCache == nil {
		wallets, err := p.loader.GetWallets()
		if err != nil {
			p.logger.Error("Failed to load wallets", "error", err)
			return nil, err
		}
		p.walletsCache = wallets
		p.logger.Info("Wallets loaded and cached successfully", "count", len(wallets))
	}
	return cloneWallets(p.walletsCache), nil
}

// GetWalletByAddress implements port.WalletProvider.
func (p *walletProviderImpl) GetWalletByAddress(address string) (*entity.Wallet, error) {
	normalized, err := balanceloader.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	wallets, err := p.GetWallets()
	if err != nil {
		return nil, err
	}
	for i := range wallets {
		if wallets[i].Address == normalized {
			return &wallets[i], nil
		}
	}
	p.logger.Debug("Wallet not found by address", "address", normalized)
	return nil, fmt.Errorf("%w: %s", entity.ErrWalletNotFound, normalized)
}

func cloneWallets(src []entity.Wallet) []entity.Wallet {
	out := make([]entity.Wallet, len(src))
	for i, w := range src {
		out[i] = entity.Wallet{Address: w.Address, Balances: append([]entity.WalletBalance(nil), w.Balances...)}
	}
	return out
}
