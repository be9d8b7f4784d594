package roadmap

// FallbackSuggestions is the curated list served when the model cannot
// produce a usable suggestion set. already_known is still recomputed from
// the caller's skills so the fallback behaves like a real response.
func FallbackSuggestions(knownSkills []string) []TechSuggestion {
	out := []TechSuggestion{
		{Name: "LangChain", Description: "Framework for LLM applications", Category: "AI/ML", Difficulty: "intermediate", RelevanceScore: 9, Prerequisites: []string{"Python", "APIs"}, UseCases: []string{"Chatbots", "RAG systems"}},
		{Name: "LangGraph", Description: "Stateful multi-actor LLM applications", Category: "AI/ML", Difficulty: "advanced", RelevanceScore: 10, Prerequisites: []string{"LangChain", "Graph Theory"}, UseCases: []string{"Multi-agent systems", "Complex workflows"}},
		{Name: "CrewAI", Description: "Framework for orchestrating AI agents", Category: "AI/ML", Difficulty: "intermediate", RelevanceScore: 9, Prerequisites: []string{"Python", "LLMs"}, UseCases: []string{"Agent collaboration", "Task automation"}},
		{Name: "Redis", Description: "In-memory data store for caching and real-time apps", Category: "Database", Difficulty: "beginner", RelevanceScore: 8, Prerequisites: []string{"Databases", "Caching concepts"}, UseCases: []string{"Session storage", "Real-time analytics"}},
		{Name: "AWS", Description: "Amazon Web Services cloud platform", Category: "Cloud", Difficulty: "intermediate", RelevanceScore: 9, Prerequisites: []string{"Cloud concepts", "Linux"}, UseCases: []string{"Hosting", "Serverless", "ML deployment"}},
		{Name: "Azure", Description: "Microsoft cloud computing platform", Category: "Cloud", Difficulty: "intermediate", RelevanceScore: 8, Prerequisites: []string{"Cloud concepts"}, UseCases: []string{"Enterprise apps", "AI services"}},
		{Name: "Docker", Description: "Containerization platform", Category: "DevOps", Difficulty: "beginner", RelevanceScore: 9, Prerequisites: []string{"Linux basics"}, UseCases: []string{"App deployment", "Microservices"}},
		{Name: "Kubernetes", Description: "Container orchestration system", Category: "DevOps", Difficulty: "advanced", RelevanceScore: 8, Prerequisites: []string{"Docker", "Networking"}, UseCases: []string{"Scaling", "Production deployment"}},
		{Name: "MCP Servers", Description: "Model Context Protocol for AI integrations", Category: "AI/ML", Difficulty: "intermediate", RelevanceScore: 10, Prerequisites: []string{"APIs", "LLMs"}, UseCases: []string{"Tool integration", "Agent systems"}},
		{Name: "Vector Databases", Description: "Databases optimized for embeddings", Category: "Database", Difficulty: "intermediate", RelevanceScore: 9, Prerequisites: []string{"Databases", "Embeddings"}, UseCases: []string{"Semantic search", "RAG"}},
		{Name: "FastAPI", Description: "Modern Python web framework", Category: "Backend", Difficulty: "beginner", RelevanceScore: 8, Prerequisites: []string{"Python", "REST APIs"}, UseCases: []string{"APIs", "Microservices"}},
		{Name: "React", Description: "JavaScript library for UIs", Category: "Frontend", Difficulty: "intermediate", RelevanceScore: 7, Prerequisites: []string{"JavaScript", "HTML/CSS"}, UseCases: []string{"Web apps", "SPAs"}},
	}
	markKnown(out, knownSkills)
	return out
}
