package lifecycle

import sd "github.com/coreos/go-systemd/v22/daemon"

// Best-effort service-manager notifications; no-ops outside systemd.

func notifyReady() {
	_, _ = sd.SdNotify(false, sd.SdNotifyReady)
}

func notifyStopping() {
	_, _ = sd.SdNotify(false, sd.SdNotifyStopping)
}
