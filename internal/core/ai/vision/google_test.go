package vision

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/status"

	"eatease-backend/internal/core/detection"
)

func sampleResponse() *visionpb.BatchAnnotateImagesResponse {
	return &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{{
			LabelAnnotations: []*visionpb.EntityAnnotation{
				{Description: "Food", Score: 0.98},
				{Description: " Tomato ", Score: 0.9},
				{Description: "", Score: 0.5},
			},
			LocalizedObjectAnnotations: []*visionpb.LocalizedObjectAnnotation{
				{
					Name:  "Carrot",
					Score: 0.75,
					BoundingPoly: &visionpb.BoundingPoly{NormalizedVertices: []*visionpb.NormalizedVertex{
						{X: 0.1, Y: 0.2}, {X: 0.5, Y: 0.2}, {X: 0.5, Y: 0.6}, {X: 0.1, Y: 0.6},
					}},
				},
				{Name: "Egg", Score: 0.6},
			},
		}},
	}
}

func TestConvertResponse(t *testing.T) {
	dets, err := ConvertResponse(sampleResponse())
	require.NoError(t, err)
	require.Len(t, dets, 4)

	assert.Equal(t, "food", dets[0].Label)
	assert.Equal(t, detection.SourceLabel, dets[0].Source)
	assert.Equal(t, "tomato", dets[1].Label)
	assert.InDelta(t, 0.9, dets[1].Confidence, 1e-6)

	assert.Equal(t, "carrot", dets[2].Label)
	assert.Equal(t, detection.SourceObject, dets[2].Source)
	require.NotNil(t, dets[2].Box)
	assert.InDelta(t, 0.1, dets[2].Box.X1, 1e-6)
	assert.InDelta(t, 0.2, dets[2].Box.Y1, 1e-6)
	assert.InDelta(t, 0.5, dets[2].Box.X2, 1e-6)
	assert.InDelta(t, 0.6, dets[2].Box.Y2, 1e-6)

	assert.Nil(t, dets[3].Box)
}

func TestConvertResponse_Empty(t *testing.T) {
	dets, err := ConvertResponse(nil)
	require.NoError(t, err)
	assert.Empty(t, dets)

	dets, err = ConvertResponse(&visionpb.BatchAnnotateImagesResponse{})
	require.NoError(t, err)
	assert.NotNil(t, dets)
}

func TestConvertResponse_AnnotateError(t *testing.T) {
	resp := &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{{Error: &status.Status{Code: 3, Message: "bad image data"}}},
	}
	_, err := ConvertResponse(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad image data")
}

func TestDetector_Detect(t *testing.T) {
	var got *visionpb.BatchAnnotateImagesRequest
	d := newDetector(func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		got = req
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return sampleResponse(), nil
	}, Options{MaxLabels: 7})

	dets, err := d.Detect(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Len(t, dets, 4)
	assert.Equal(t, ProviderName, d.Name())

	require.Len(t, got.Requests, 1)
	assert.Equal(t, []byte("img"), got.Requests[0].Image.Content)
	features := got.Requests[0].Features
	require.Len(t, features, 2)
	assert.Equal(t, visionpb.Feature_LABEL_DETECTION, features[0].Type)
	assert.Equal(t, int32(7), features[0].MaxResults)
	assert.Equal(t, visionpb.Feature_OBJECT_LOCALIZATION, features[1].Type)
	assert.Equal(t, int32(defaultMaxObjects), features[1].MaxResults)
}

func TestDetector_DetectError(t *testing.T) {
	d := newDetector(func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		return nil, errors.New("permission denied")
	}, Options{})

	_, err := d.Detect(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, d.Close())
}

func TestClientOptions(t *testing.T) {
	assert.Empty(t, ClientOptions(Options{}))
	assert.Len(t, ClientOptions(Options{CredentialsFile: "/etc/gcp.json"}), 1)
	assert.Len(t, ClientOptions(Options{CredentialsJSON: `{"type":"service_account"}`, CredentialsFile: "/etc/gcp.json"}), 1)
}
