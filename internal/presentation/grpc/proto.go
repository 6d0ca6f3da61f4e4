package grpc

// proto.go defines the gRPC server interface derived from
// creditbridge/scoring/v1/scoring.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated api module.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ScoringServiceServer is the server API for ScoringService.
type ScoringServiceServer interface {
	ScoreApplicant(context.Context, *ScoreApplicantRequest) (*ScoreApplicantResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ListModels(context.Context, *ListModelsRequest) (*ListModelsResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) ScoreApplicant(context.Context, *ScoreApplicantRequest) (*ScoreApplicantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreApplicant not implemented")
}
func (UnimplementedScoringServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedScoringServiceServer) ListModels(context.Context, *ListModelsRequest) (*ListModelsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListModels not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers the ScoringServiceServer with the gRPC server.
func RegisterScoringServiceServer(s *grpclib.Server, srv ScoringServiceServer) {
	s.RegisterService(&_ScoringService_serviceDesc, srv)
}

var _ScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "creditbridge.scoring.v1.ScoringService",
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreApplicant", Handler: _ScoringService_ScoreApplicant_Handler},
		{MethodName: "GetAssessment", Handler: _ScoringService_GetAssessment_Handler},
		{MethodName: "ListModels", Handler: _ScoringService_ListModels_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ScoringService_ScoreApplicant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreApplicantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).ScoreApplicant(ctx, req)
}

func _ScoringService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).GetAssessment(ctx, req)
}

func _ScoringService_ListModels_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListModelsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScoringServiceServer).ListModels(ctx, req)
}
