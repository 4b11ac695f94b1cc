package eventbus

import (
	"github.com/jask/beamwallet/internal/uithread"
)

// NativeListener receives callbacks from the wallet engine on arbitrary
// goroutines and republishes them on the bus from the UI thread.
type NativeListener struct {
	bus *Bus
	ui  uithread.Dispatcher
}

func NewNativeListener(bus *Bus, ui uithread.Dispatcher) *NativeListener {
	return &NativeListener{bus: bus, ui: ui}
}

func (n *NativeListener) OnKeychainChanged()    { n.post(KeychainChanged, nil) }
func (n *NativeListener) OnTransactionChanged() { n.post(TransactionChanged, nil) }
func (n *NativeListener) OnSystemStateChanged() { n.post(SystemStateChanged, nil) }
func (n *NativeListener) OnTxPeerChanged()      { n.post(TxPeerChanged, nil) }
func (n *NativeListener) OnAddressChanged()     { n.post(AddressChanged, nil) }

func (n *NativeListener) OnSyncProgress(done, total int) {
	n.post(SyncProgressUpdated, SyncProgress{Done: done, Total: total})
}

func (n *NativeListener) post(ch Channel, payload any) {
	n.ui.Post(func() { n.bus.Publish(ch, payload) })
}
