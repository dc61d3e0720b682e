package docpage

// Built-in MicroDeploy content. DefaultCatalog validates it once at startup.

var builtinFeatures = []FeatureCard{
	{
		Title: "CI/CD Pipeline",
		Description: "Automated build, test, and deployment workflows using GitLab CI/CD to ensure " +
			"consistent and reliable delivery of microservices.",
		GlyphName: "git-merge",
	},
	{
		Title: "Containerization",
		Description: "Docker-based containerization for consistent environments across development, " +
			"testing, and production deployments.",
		GlyphName: "box",
	},
	{
		Title: "Kubernetes Orchestration",
		Description: "Scalable and resilient infrastructure with Kubernetes for managing containerized " +
			"microservices with automated scaling and self-healing.",
		GlyphName: "server",
	},
	{
		Title: "Monitoring & Alerting",
		Description: "Comprehensive monitoring with Prometheus and visualization with Grafana dashboards " +
			"for real-time insights into system performance.",
		GlyphName: "bar-chart",
	},
}

var builtinAsset = ArchitectureAsset{
	SourceURI: "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?ixlib=rb-1.2.1&auto=format&fit=crop&w=1000&q=80",
	AltText:   "Architecture Diagram",
}

var builtinSnippets = []CodeSnippet{
	{
		ID:       "pipeline-config",
		Heading:  "GitLab CI/CD Configuration",
		Language: "yaml",
		Body:     pipelineConfig,
	},
	{
		ID:       "container-build",
		Heading:  "Dockerfile Example",
		Language: "dockerfile",
		Body:     containerBuild,
	},
	{
		ID:       "orchestration-manifest",
		Heading:  "Kubernetes Deployment",
		Language: "yaml",
		Body:     orchestrationManifest,
	},
	{
		ID:       "metrics-config",
		Heading:  "Prometheus Configuration",
		Language: "yaml",
		Body:     metricsConfig,
	},
}

var builtinSteps = []ImplementationStep{
	{
		Heading: "Set Up GitLab CI/CD Pipeline",
		Summary: "Configure your GitLab repository with a CI/CD pipeline that automates the build, test, and deployment process.",
		SubSteps: []string{
			"Create a `.gitlab-ci.yml` file in your repository root",
			"Define stages for build, test, deploy, and monitoring",
			"Configure Docker image building and pushing to a registry",
			"Set up automated testing for your microservices",
			"Implement deployment to Kubernetes",
		},
	},
	{
		Heading: "Containerize Your Microservices",
		Summary: "Create Docker containers for each microservice to ensure consistent environments.",
		SubSteps: []string{
			"Create a Dockerfile for each microservice",
			"Implement multi-stage builds to minimize image size",
			"Include health check endpoints",
			"Configure proper resource limits",
			"Implement logging to stdout/stderr",
		},
	},
	{
		Heading: "Set Up Kubernetes Infrastructure",
		Summary: "Configure Kubernetes to orchestrate your containerized microservices.",
		SubSteps: []string{
			"Create namespace for your microservices",
			"Define deployments, services, and ingress resources",
			"Configure resource requests and limits",
			"Implement health checks and readiness probes",
			"Set up horizontal pod autoscaling",
		},
	},
	{
		Heading: "Implement Monitoring with Prometheus and Grafana",
		Summary: "Set up comprehensive monitoring for your microservices infrastructure.",
		SubSteps: []string{
			"Deploy Prometheus using Helm chart",
			"Configure service discovery for Kubernetes pods",
			"Implement custom metrics in your microservices",
			"Set up Grafana dashboards for visualization",
			"Configure alerting rules and notification channels",
		},
	},
}

const pipelineConfig = `# .gitlab-ci.yml
stages:
  - build
  - test
  - deploy
  - monitor

variables:
  DOCKER_REGISTRY: registry.example.com
  KUBERNETES_NAMESPACE: microservices

build:
  stage: build
  image: docker:20.10.16
  services:
    - docker:20.10.16-dind
  script:
    - docker build -t $DOCKER_REGISTRY/microservice:$CI_COMMIT_SHA .
    - docker push $DOCKER_REGISTRY/microservice:$CI_COMMIT_SHA

test:
  stage: test
  image: node:16-alpine
  script:
    - npm install
    - npm test

deploy:
  stage: deploy
  image: bitnami/kubectl:latest
  script:
    - kubectl set image deployment/microservice microservice=$DOCKER_REGISTRY/microservice:$CI_COMMIT_SHA
    - kubectl rollout status deployment/microservice

monitor:
  stage: monitor
  script:
    - curl -X POST http://prometheus-pushgateway:9091/metrics/job/microservice/instance/$CI_COMMIT_SHA
      --data-binary "deployment_success{service="microservice",version="$CI_COMMIT_SHA"} 1"
`

const containerBuild = `# Dockerfile
FROM node:16-alpine AS builder
WORKDIR /app
COPY package*.json ./
RUN npm ci
COPY . .
RUN npm run build

FROM node:16-alpine
WORKDIR /app
COPY --from=builder /app/dist ./dist
COPY --from=builder /app/node_modules ./node_modules
COPY package*.json ./

EXPOSE 3000
CMD ["npm", "start"]
`

const orchestrationManifest = `# kubernetes/deployment.yaml
apiVersion: apps/v1
kind: Deployment
metadata:
  name: microservice
  namespace: microservices
spec:
  replicas: 3
  selector:
    matchLabels:
      app: microservice
  template:
    metadata:
      labels:
        app: microservice
      annotations:
        prometheus.io/scrape: "true"
        prometheus.io/port: "3000"
        prometheus.io/path: "/metrics"
    spec:
      containers:
      - name: microservice
        image: registry.example.com/microservice:latest
        ports:
        - containerPort: 3000
        resources:
          limits:
            cpu: "500m"
            memory: "512Mi"
          requests:
            cpu: "200m"
            memory: "256Mi"
        livenessProbe:
          httpGet:
            path: /health
            port: 3000
          initialDelaySeconds: 30
          periodSeconds: 10
        readinessProbe:
          httpGet:
            path: /ready
            port: 3000
          initialDelaySeconds: 5
          periodSeconds: 5
`

const metricsConfig = `# prometheus/prometheus.yml
global:
  scrape_interval: 15s
  evaluation_interval: 15s

scrape_configs:
  - job_name: 'kubernetes-pods'
    kubernetes_sd_configs:
      - role: pod
    relabel_configs:
      - source_labels: [__meta_kubernetes_pod_annotation_prometheus_io_scrape]
        action: keep
        regex: true
      - source_labels: [__meta_kubernetes_pod_annotation_prometheus_io_path]
        action: replace
        target_label: __metrics_path__
        regex: (.+)
      - source_labels: [__address__, __meta_kubernetes_pod_annotation_prometheus_io_port]
        action: replace
        regex: ([^:]+)(?::\d+)?;(\d+)
        replacement: $1:$2
        target_label: __address__
      - action: labelmap
        regex: __meta_kubernetes_pod_label_(.+)
      - source_labels: [__meta_kubernetes_namespace]
        action: replace
        target_label: kubernetes_namespace
      - source_labels: [__meta_kubernetes_pod_name]
        action: replace
        target_label: kubernetes_pod_name
`
