package services

import (
	"fmt"
	"strings"

	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
)

type promptLabels struct {
	repository string
	time       string
	author     string
	subject    string
	details    string
	report     string
	polish     string
}

var labels = map[string]promptLabels{
	config.LanguageEN: {
		repository: "Repository: ",
		time:       "Time: ",
		author:     "Author: ",
		subject:    "Subject: ",
		details:    "Details:",
		report: `Write a daily work report based on the following git commits:

%s

Structure the report as follows:
1. Work log - date (YYYY-MM-DD)
2. Summary of today's main work
3. Work grouped by module or repository
4. Key progress
5. Open issues

Requirements:
1. Keep the report to roughly 200-300 words
2. Use professional and concise wording
3. Highlight the most important work
`,
		polish: `Improve the following daily work report so it reads professionally, concisely and in good order:

%s

Requirements:
1. Keep the original structure and main content
2. Use professional and concise wording
3. Fix grammar and phrasing mistakes
4. Highlight the most important work
5. Keep the report to roughly 200-300 words
`,
	},
	config.LanguageZH: {
		repository: "仓库：",
		time:       "时间：",
		author:     "作者：",
		subject:    "主题：",
		details:    "详细说明：",
		report: `请基于以下git提交记录生成工作日报:

%s

请按照以下格式生成日报：
1. 工作日志-日期（YYYY-MM-DD）
2. 总结今日主要工作内容
3. 按模块或仓库分组的工作内容
4. 重要的工作进展
5. 待解决的问题

要求:
1. 总体字数控制在200-300字左右
2. 使用专业且简洁的描述
3. 突出重要的工作内容
`,
		polish: `请优化以下工作日报内容，使其更加专业、简洁和有条理:

%s

要求:
1. 保持原有的结构和主要内容
2. 使用专业且简洁的描述
3. 修正语法和表达错误
4. 突出重要的工作内容
5. 总体字数控制在200-300字左右
`,
	},
}

func labelsFor(language string) promptLabels {
	if l, ok := labels[language]; ok {
		return l
	}
	return labels[config.LanguageEN]
}

// FormatCommits renders commits grouped by repository. Repositories appear in
// first-seen order and commits keep their input order within each group.
func FormatCommits(commits []models.Commit, language string) string {
	l := labelsFor(language)

	var order []string
	groups := make(map[string][]models.Commit)
	for _, c := range commits {
		if _, seen := groups[c.Repository]; !seen {
			order = append(order, c.Repository)
		}
		groups[c.Repository] = append(groups[c.Repository], c)
	}

	var b strings.Builder
	for _, repo := range order {
		fmt.Fprintf(&b, "\n%s%s\n", l.repository, repo)
		b.WriteString(strings.Repeat("-", 50) + "\n")
		for _, c := range groups[repo] {
			fmt.Fprintf(&b, "%s%s\n", l.time, c.Timestamp)
			fmt.Fprintf(&b, "%s%s\n", l.author, c.Author)
			fmt.Fprintf(&b, "%s%s\n", l.subject, c.Subject)
			if c.Body != "" {
				fmt.Fprintf(&b, "%s\n%s\n", l.details, c.Body)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// BuildPrompt embeds the formatted commits in the report instruction
func BuildPrompt(commits []models.Commit, language string) string {
	return fmt.Sprintf(labelsFor(language).report, FormatCommits(commits, language))
}

// BuildPolishPrompt asks the model to tidy up a hand-written report
func BuildPolishPrompt(report, language string) string {
	return fmt.Sprintf(labelsFor(language).polish, report)
}
