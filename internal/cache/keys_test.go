package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "quiz questions",
			serviceName: "quiz",
			objectType:  "questions",
			identifier:  "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
			expectedKey: "quizforge:quiz:questions:01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "result",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "quizforge:quiz:result:abc",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quizgen",
			objectType:  "text",
			identifier:  "hash",
			paramsKey:   []string{"gpt-4o-mini"},
			expectedKey: "quizforge:quizgen:text:hash:gpt-4o-mini",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "order",
			objectType:  "item",
			identifier:  "xyz",
			paramsKey:   []string{"param1", "param2", "param3"},
			expectedKey: "quizforge:order:item:xyz:param1_param2_param3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
