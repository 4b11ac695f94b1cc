package eventbus

import "fmt"

// Channel identifies one category of native-origin notification.
type Channel int

const (
	KeychainChanged Channel = iota
	TransactionChanged
	SystemStateChanged
	TxPeerChanged
	AddressChanged
	SyncProgressUpdated

	numChannels
)

var channelNames = [numChannels]string{
	KeychainChanged:     "keychain-changed",
	TransactionChanged:  "tx-changed",
	SystemStateChanged:  "system-state-changed",
	TxPeerChanged:       "tx-peer-changed",
	AddressChanged:      "address-changed",
	SyncProgressUpdated: "sync-progress",
}

// Channels lists every channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, 0, numChannels)
	for c := Channel(0); c < numChannels; c++ {
		out = append(out, c)
	}
	return out
}

func (c Channel) Valid() bool {
	return c >= 0 && c < numChannels
}

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// SyncProgress is the payload of SyncProgressUpdated. The other channels are
// pure triggers and carry a nil payload.
type SyncProgress struct {
	Done  int
	Total int
}
