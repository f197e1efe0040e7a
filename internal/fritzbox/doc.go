// Package fritzbox provides a client for the parental-control pages of an
// AVM FRITZ!Box web interface.
//
// The router has no documented API for access profiles. This package logs in
// through the session-id handshake, scrapes the profile and device pages,
// and posts profile changes the same way the web interface does.
//
// # Login
//
// GET /login_sid.lua returns a SID and a Challenge. A SID of
// "0000000000000000" means not authenticated; the client then sends
// username and a response computed by ChallengeResponse and checks the SID
// once more. There is exactly one response round.
//
// # Inventory
//
// Devices appear under two ids. The network device list (page=netDev)
// exposes a primary id per device, while the profile assignment page
// (kids_userlist.lua) addresses devices by an id that may differ. Connect
// fetches both and Inventory.Merge unifies them:
//
//	session, err := fritzbox.Connect(ctx, fritzbox.Options{
//	    URL:      "http://fritz.box",
//	    Password: password,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range session.Devices() {
//	    fmt.Println(d.PrimaryID, d.ProfileID, d.Name)
//	}
//
// # Profile Changes
//
//	result, err := session.SetProfiles(ctx, []fritzbox.Assignment{
//	    {DeviceKey: "landevice1234", ProfileKey: "filtprof3"},
//	})
//
// All resolvable pairs are sent in one POST. Pairs naming an unknown device
// or profile are skipped and reported as Diagnostic values. The router does
// not report whether the change took effect; Session.Verify reads the
// assignment page back once to check.
//
// # Error Handling
//
// Fatal errors are *Error values: transport failures (IsTransportError) and
// rejected logins (IsAuthError). Merge and update anomalies never fail the
// call; they are returned as diagnostics and logged at warn level.
//
// # Thread Safety
//
// Session is not safe for concurrent use.
package fritzbox
