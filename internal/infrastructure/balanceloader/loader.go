package balanceloader

import (
	"fmt"
	"strings"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
)

const defaultBalancesFilePath = "data/balances.json"

type balancesFile struct {
	Wallets []entity.Wallet `json:"wallets"`
}

// BalanceFileLoader implements port.WalletProvider by loading wallets and
// their balances from a JSON file.
type BalanceFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewBalanceFileLoader creates a new BalanceFileLoader. An empty filePath
// means data/balances.json.
func NewBalanceFileLoader(filePath string, loggerInfo func(msg string, args ...any)) port.WalletProvider {
	if filePath == "" {
		filePath = defaultBalancesFilePath
	}
	return &BalanceFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// NormalizeAddress validates an EVM address and returns its checksummed form.
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) || !strings.HasPrefix(strings.ToLower(address), "0x") {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidAddress, address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// GetWallets reads the wallets from the configured file. Wallets with an
// invalid address are skipped; wallets listed twice are merged.
func (l *BalanceFileLoader) GetWallets() ([]entity.Wallet, error) {
	var file balancesFile
	if err := utils.ReadJSONFile(l.filePath, &file); err != nil {
		return nil, fmt.Errorf("failed to load balances file: %w", err)
	}

	wallets := make([]entity.Wallet, 0, len(file.Wallets))
	index := make(map[string]int, len(file.Wallets))
	for i, w := range file.Wallets {
		address, err := NormalizeAddress(w.Address)
		if err != nil {
			if l.loggerInfo != nil {
				l.loggerInfo("Skipping invalid wallet address format", "file", l.filePath, "entry", i, "address", w.Address)
			}
			continue
		}
		if pos, seen := index[address]; seen {
			wallets[pos].Balances = append(wallets[pos].Balances, w.Balances...)
			continue
		}
		index[address] = len(wallets)
		wallets = append(wallets, entity.Wallet{Address: address, Balances: w.Balances})
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	}
	return wallets, nil
}

// GetWalletByAddress searches for a wallet by its address in the file.
func (l *BalanceFileLoader) GetWalletByAddress(address string) (*entity.Wallet, error) {
	normalized, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	wallets, err := l.GetWallets()
	if err != nil {
		return nil, fmt.Errorf("failed to load wallets when searching by address '%s': %w", address, err)
	}

	for _, wallet := range wallets {
		if strings.EqualFold(wallet.Address, normalized) {
			return &wallet, nil
		}
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Wallet not found by address", "address", normalized, "path", l.filePath)
	}
	return nil, fmt.Errorf("%w: %s", entity.ErrWalletNotFound, normalized)
}
