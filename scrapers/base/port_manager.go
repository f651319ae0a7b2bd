package base

import (
	"fmt"
	"sync"
)

// PortManager leases chromedriver ports to concurrent selenium fetches
type PortManager struct {
	basePort  int
	portRange int
	inUse     map[int]bool
	mutex     sync.Mutex
}

var (
	GlobalPortManager *PortManager
	once              sync.Once
)

// InitPortManager initializes the global port manager
func InitPortManager(basePort, portRange int) {
	once.Do(func() {
		GlobalPortManager = NewPortManager(basePort, portRange)
	})
}

// NewPortManager creates a port manager for basePort..basePort+portRange-1
func NewPortManager(basePort, portRange int) *PortManager {
	return &PortManager{
		basePort:  basePort,
		portRange: portRange,
		inUse:     make(map[int]bool, portRange),
	}
}

// GetPort leases the lowest free port
func (pm *PortManager) GetPort() (int, error) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	for port := pm.basePort; port < pm.basePort+pm.portRange; port++ {
		if !pm.inUse[port] {
			pm.inUse[port] = true
			return port, nil
		}
	}

	return 0, fmt.Errorf("no available ports in range %d-%d", pm.basePort, pm.basePort+pm.portRange-1)
}

// ReleasePort returns a leased port to the pool
func (pm *PortManager) ReleasePort(port int) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	delete(pm.inUse, port)
}
