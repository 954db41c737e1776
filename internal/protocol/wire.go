package protocol

import (
	"fmt"

	"github.com/mod7ex/chrome-ext-test/internal/common"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldID            = "id"
	fieldAction        = "action"
	fieldPayload       = "payload"
	fieldSecret        = "secret"
	fieldInitialized   = "initialized"
	fieldAuthenticated = "authenticated"
)

func (r Request) ToStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldID:     structpb.NewStringValue(r.ID),
		fieldAction: structpb.NewStringValue(string(r.Action)),
	}
	if r.Payload != "" {
		fields[fieldPayload] = structpb.NewStringValue(r.Payload)
	}
	return &structpb.Struct{Fields: fields}
}

func RequestFromStruct(s *structpb.Struct) (Request, error) {
	id, action, err := header(s)
	if err != nil {
		return Request{}, err
	}

	req := Request{ID: id, Action: action}
	if v, ok := s.GetFields()[fieldPayload]; ok {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return Request{}, fmt.Errorf("%w: payload must be a string", common.ErrMalformedMessage)
		}
		req.Payload = sv.StringValue
	}
	return req, nil
}

func (r Response) ToStruct() *structpb.Struct {
	state := map[string]*structpb.Value{
		fieldInitialized:   structpb.NewBoolValue(r.State.Initialized),
		fieldAuthenticated: structpb.NewBoolValue(r.State.Authenticated),
	}
	if r.State.Secret != "" {
		state[fieldSecret] = structpb.NewStringValue(r.State.Secret)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID:      structpb.NewStringValue(r.ID),
		fieldAction:  structpb.NewStringValue(string(r.Action)),
		fieldPayload: structpb.NewStructValue(&structpb.Struct{Fields: state}),
	}}
}

func ResponseFromStruct(s *structpb.Struct) (Response, error) {
	id, action, err := header(s)
	if err != nil {
		return Response{}, err
	}

	resp := Response{ID: id, Action: action}
	payload := s.GetFields()[fieldPayload].GetStructValue()
	if payload == nil {
		return Response{}, fmt.Errorf("%w: missing state payload", common.ErrMalformedMessage)
	}

	f := payload.GetFields()
	resp.State.Secret = f[fieldSecret].GetStringValue()
	resp.State.Initialized = f[fieldInitialized].GetBoolValue()
	resp.State.Authenticated = f[fieldAuthenticated].GetBoolValue()
	return resp, nil
}

func header(s *structpb.Struct) (string, Action, error) {
	if s == nil {
		return "", "", fmt.Errorf("%w: empty message", common.ErrMalformedMessage)
	}
	f := s.GetFields()

	av, ok := f[fieldAction].GetKind().(*structpb.Value_StringValue)
	if !ok || av.StringValue == "" {
		return "", "", fmt.Errorf("%w: action must be a non-empty string", common.ErrMalformedMessage)
	}
	return f[fieldID].GetStringValue(), Action(av.StringValue), nil
}
