// Package v1 defines the coaching.v1.AssessmentScoring gRPC service. Requests
// and responses travel as google.protobuf.Struct documents so the answer bag
// keeps its open shape on the wire.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "coaching.v1.AssessmentScoring"

const (
	AssessmentScoring_SubmitAssessment_FullMethodName    = "/coaching.v1.AssessmentScoring/SubmitAssessment"
	AssessmentScoring_SaveAssessment_FullMethodName      = "/coaching.v1.AssessmentScoring/SaveAssessment"
	AssessmentScoring_GetLatestAssessment_FullMethodName = "/coaching.v1.AssessmentScoring/GetLatestAssessment"
	AssessmentScoring_GetScoreChange_FullMethodName      = "/coaching.v1.AssessmentScoring/GetScoreChange"
	AssessmentScoring_GetRecommendations_FullMethodName  = "/coaching.v1.AssessmentScoring/GetRecommendations"
	AssessmentScoring_CompareSwotQuarters_FullMethodName = "/coaching.v1.AssessmentScoring/CompareSwotQuarters"
)

// Request fields.
const (
	FieldBusinessID  = "business_id"
	FieldAnswers     = "answers"
	FieldAssessment  = "assessment"
	FieldFromQuarter = "from_quarter"
	FieldToQuarter   = "to_quarter"
	FieldCategory    = "category"
)

// AssessmentScoringClient is the client API for the AssessmentScoring service.
type AssessmentScoringClient interface {
	SubmitAssessment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SaveAssessment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetLatestAssessment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetScoreChange(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRecommendations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CompareSwotQuarters(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type assessmentScoringClient struct {
	cc grpc.ClientConnInterface
}

func NewAssessmentScoringClient(cc grpc.ClientConnInterface) AssessmentScoringClient {
	return &assessmentScoringClient{cc}
}

func (c *assessmentScoringClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *assessmentScoringClient) SubmitAssessment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AssessmentScoring_SubmitAssessment_FullMethodName, in, opts...)
}

func (c *assessmentScoringClient) SaveAssessment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AssessmentScoring_SaveAssessment_FullMethodName, in, opts...)
}

func (c *assessmentScoringClient) GetLatestAssessment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AssessmentScoring_GetLatestAssessment_FullMethodName, in, opts...)
}

func (c *assessmentScoringClient) GetScoreChange(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AssessmentScoring_GetScoreChange_FullMethodName, in, opts...)
}

func (c *assessmentScoringClient) GetRecommendations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AssessmentScoring_GetRecommendations_FullMethodName, in, opts...)
}

func (c *assessmentScoringClient) CompareSwotQuarters(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AssessmentScoring_CompareSwotQuarters_FullMethodName, in, opts...)
}

// AssessmentScoringServer is the server API for the AssessmentScoring service.
// Implementations must embed UnimplementedAssessmentScoringServer.
type AssessmentScoringServer interface {
	SubmitAssessment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveAssessment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLatestAssessment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetScoreChange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompareSwotQuarters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedAssessmentScoringServer()
}

// UnimplementedAssessmentScoringServer returns Unimplemented for every method.
type UnimplementedAssessmentScoringServer struct{}

func (UnimplementedAssessmentScoringServer) SubmitAssessment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitAssessment not implemented")
}
func (UnimplementedAssessmentScoringServer) SaveAssessment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SaveAssessment not implemented")
}
func (UnimplementedAssessmentScoringServer) GetLatestAssessment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestAssessment not implemented")
}
func (UnimplementedAssessmentScoringServer) GetScoreChange(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScoreChange not implemented")
}
func (UnimplementedAssessmentScoringServer) GetRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRecommendations not implemented")
}
func (UnimplementedAssessmentScoringServer) CompareSwotQuarters(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CompareSwotQuarters not implemented")
}
func (UnimplementedAssessmentScoringServer) mustEmbedUnimplementedAssessmentScoringServer() {}

func RegisterAssessmentScoringServer(s grpc.ServiceRegistrar, srv AssessmentScoringServer) {
	s.RegisterService(&AssessmentScoring_ServiceDesc, srv)
}

type unaryMethod func(AssessmentScoringServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AssessmentScoringServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AssessmentScoringServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AssessmentScoring_ServiceDesc is the grpc.ServiceDesc for the AssessmentScoring service.
var AssessmentScoring_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssessmentScoringServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitAssessment",
			Handler:    unaryHandler(AssessmentScoring_SubmitAssessment_FullMethodName, AssessmentScoringServer.SubmitAssessment),
		},
		{
			MethodName: "SaveAssessment",
			Handler:    unaryHandler(AssessmentScoring_SaveAssessment_FullMethodName, AssessmentScoringServer.SaveAssessment),
		},
		{
			MethodName: "GetLatestAssessment",
			Handler:    unaryHandler(AssessmentScoring_GetLatestAssessment_FullMethodName, AssessmentScoringServer.GetLatestAssessment),
		},
		{
			MethodName: "GetScoreChange",
			Handler:    unaryHandler(AssessmentScoring_GetScoreChange_FullMethodName, AssessmentScoringServer.GetScoreChange),
		},
		{
			MethodName: "GetRecommendations",
			Handler:    unaryHandler(AssessmentScoring_GetRecommendations_FullMethodName, AssessmentScoringServer.GetRecommendations),
		},
		{
			MethodName: "CompareSwotQuarters",
			Handler:    unaryHandler(AssessmentScoring_CompareSwotQuarters_FullMethodName, AssessmentScoringServer.CompareSwotQuarters),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coaching/v1/assessment.proto",
}
