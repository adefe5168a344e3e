package dto

// RepoRequest names a repository by its GitHub URL.
type RepoRequest struct {
	RepoURL string `json:"repoUrl" validate:"required"`
}

// GenerateSummariesRequest selects the files to analyze. An empty framework means jest.
type GenerateSummariesRequest struct {
	RepoURL   string   `json:"repoUrl" validate:"required"`
	FilePaths []string `json:"filePaths" validate:"required,min=1,dive,required"`
	Framework string   `json:"framework"`
}

// GenerateSummariesResponse carries the recovered summaries in model order.
type GenerateSummariesResponse struct {
	Summaries []string `json:"summaries"`
}

// GenerateCodeRequest asks for the test code of one summary.
type GenerateCodeRequest struct {
	FileContents string `json:"fileContents" validate:"required"`
	Summary      string `json:"summary" validate:"required"`
	Framework    string `json:"framework"`
}

// GenerateCodeResponse carries the model output untouched.
type GenerateCodeResponse struct {
	Code string `json:"code"`
}
