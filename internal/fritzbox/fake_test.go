package fritzbox

import (
	"context"
	"net/url"
)

type fakeCall struct {
	Method string
	Path   string
	Values url.Values
}

// fakeTransport answers requests from a queue of canned replies and records
// every call.
type fakeTransport struct {
	calls   []fakeCall
	replies []fakeReply
}

type fakeReply struct {
	body string
	err  error
}

func (f *fakeTransport) reply(body string) *fakeTransport {
	f.replies = append(f.replies, fakeReply{body: body})
	return f
}

func (f *fakeTransport) fail(err error) *fakeTransport {
	f.replies = append(f.replies, fakeReply{err: err})
	return f
}

func (f *fakeTransport) next(method, path string, values url.Values) ([]byte, error) {
	f.calls = append(f.calls, fakeCall{Method: method, Path: path, Values: values})
	if len(f.replies) == 0 {
		return []byte{}, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	return f.next("GET", path, query)
}

func (f *fakeTransport) PostForm(_ context.Context, path string, form url.Values) ([]byte, error) {
	return f.next("POST", path, form)
}

func sessionInfoXML(sid, challenge string) string {
	return `<?xml version="1.0" encoding="utf-8"?><SessionInfo><SID>` + sid +
		`</SID><Challenge>` + challenge + `</Challenge><BlockTime>0</BlockTime></SessionInfo>`
}
